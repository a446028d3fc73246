package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fleetworks/costengine/pkg/services/config"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
	"github.com/fleetworks/costengine/pkg/store/sqlite/migrations"

	"github.com/spf13/cobra"
)

type MigrateCmd struct {
	profile  string
	registry config.Registry
	output   io.Writer
}

func NewMigrateCmd(registry config.Registry, output io.Writer) *cobra.Command {
	mc := &MigrateCmd{registry: registry, output: output}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the profile database schema up to date",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.profile, "profile", "default", "Configuration profile to use")

	return cmd
}

func (mc *MigrateCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	profile, err := mc.registry.GetProfile(ctx, mc.profile)
	if err != nil {
		return err
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: profile.DBPath})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	fmt.Fprintf(mc.output, "Database %s is up to date.\n", profile.DBPath)
	return nil
}
