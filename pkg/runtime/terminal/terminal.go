package terminal

import (
	"io"
	"os"

	"github.com/fleetworks/costengine/pkg/runtime/terminal/commands"
	"github.com/fleetworks/costengine/pkg/runtime/terminal/export"

	"github.com/fleetworks/costengine/pkg/services/config"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry config.Registry
	reporter *export.Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry config.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costengine",
		Short: "Fleet cost allocation engine",
	}

	cmd.AddCommand(commands.NewCalculateCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewReportCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewSeedCmd(cli.registry, cli.output))
	cmd.AddCommand(commands.NewMigrateCmd(cli.registry, cli.output))

	return cmd
}
