package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fleetworks/costengine/pkg/models/domain"
	"github.com/fleetworks/costengine/pkg/services/config"
	"github.com/fleetworks/costengine/pkg/services/seed"

	"github.com/spf13/cobra"
)

type SeedCmd struct {
	profile  string
	period   string
	registry config.Registry
	output   io.Writer
}

func NewSeedCmd(registry config.Registry, output io.Writer) *cobra.Command {
	sc := &SeedCmd{registry: registry, output: output}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the demo tenant with sample fleet activity",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "default", "Configuration profile to use")
	cmd.Flags().StringVar(&sc.period, "period", "current", "Month to place the sample activity in (YYYY-MM or 'current')")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	period, err := domain.ParseMonth(sc.period, time.Now())
	if err != nil {
		return err
	}

	runtime, err := openEnv(ctx, sc.registry, sc.profile)
	if err != nil {
		return err
	}
	defer runtime.Close()

	t, err := seed.Demo(ctx, runtime.db, period)
	if err != nil {
		return fmt.Errorf("seed demo tenant: %w", err)
	}

	fmt.Fprintf(sc.output, "Tenant %q (%s) is ready with sample activity for %s.\n", t.Name, t.ID, period)
	return nil
}
