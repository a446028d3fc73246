package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetworks/costengine/pkg/adapters"
	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/runtime/terminal/export"
	"github.com/fleetworks/costengine/pkg/services/config"
	"github.com/fleetworks/costengine/pkg/tenant"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	profile  string
	tenant   string
	period   string
	limit    int
	registry config.Registry
	reporter *export.Reporter
}

func NewReportCmd(registry config.Registry, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show persisted allocation results for a tenant and period",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profile, "profile", "default", "Configuration profile to use")
	cmd.Flags().StringVar(&rc.tenant, "tenant", "", "Tenant name or id")
	cmd.Flags().StringVar(&rc.period, "period", "current", "Calculation month (YYYY-MM or 'current')")
	cmd.Flags().IntVar(&rc.limit, "limit", 0, "Maximum number of order breakdown rows to show (0 = all)")

	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	period, err := domain.ParseMonth(rc.period, time.Now())
	if err != nil {
		return err
	}

	runtime, err := openEnv(ctx, rc.registry, rc.profile)
	if err != nil {
		return err
	}
	defer runtime.Close()

	t, err := runtime.resolveTenant(ctx, rc.tenant)
	if err != nil {
		return err
	}
	scoped := tenant.WithScope(ctx, tenant.Scope{TenantID: t.ID})

	summary, err := runtime.analytics.Summary(scoped, period)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}
	snapshots, err := runtime.analytics.PeriodSnapshots(scoped, period)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}
	breakdowns, err := runtime.analytics.PeriodBreakdowns(scoped, period)
	if err != nil {
		return fmt.Errorf("load breakdowns: %w", err)
	}
	if rc.limit > 0 && len(breakdowns) > rc.limit {
		breakdowns = breakdowns[:rc.limit]
	}

	return rc.reporter.Handle(adapters.MapPeriodResultsToReport(summary, snapshots, breakdowns))
}
