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

type CalculateCmd struct {
	profile  string
	tenant   string
	period   string
	dryRun   bool
	registry config.Registry
	reporter *export.Reporter
}

func NewCalculateCmd(registry config.Registry, reporter *export.Reporter) *cobra.Command {
	cc := &CalculateCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run the cost allocation pipeline for a tenant and period",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profile, "profile", "default", "Configuration profile to use")
	cmd.Flags().StringVar(&cc.tenant, "tenant", "", "Tenant name or id")
	cmd.Flags().StringVar(&cc.period, "period", "current", "Calculation month (YYYY-MM or 'current')")
	cmd.Flags().BoolVar(&cc.dryRun, "dry-run", false, "Compute without persisting results")

	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func (cc *CalculateCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	period, err := domain.ParseMonth(cc.period, time.Now())
	if err != nil {
		return err
	}

	runtime, err := openEnv(ctx, cc.registry, cc.profile)
	if err != nil {
		return err
	}
	defer runtime.Close()

	t, err := runtime.resolveTenant(ctx, cc.tenant)
	if err != nil {
		return err
	}
	scoped := tenant.WithScope(ctx, tenant.Scope{TenantID: t.ID})

	var result domain.CalculationResult
	if cc.dryRun {
		result, err = runtime.calculator.CalculateDry(scoped, period)
	} else {
		result, err = runtime.calculator.Calculate(scoped, period)
	}
	if err != nil {
		return fmt.Errorf("run calculation: %w", err)
	}

	return cc.reporter.Handle(adapters.MapCalculationResultToReport(result))
}
