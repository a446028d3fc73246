package main

import (
	"fmt"
	"net"
	"os"

	"github.com/fleetworks/costengine/pkg/services/analytics"
	"github.com/fleetworks/costengine/pkg/services/engine"
	"github.com/fleetworks/costengine/pkg/store/sqlite"
	"github.com/fleetworks/costengine/pkg/store/sqlite/activity"
	"github.com/fleetworks/costengine/pkg/store/sqlite/migrations"
	"github.com/fleetworks/costengine/pkg/store/sqlite/results"
	"github.com/fleetworks/costengine/pkg/store/sqlite/tenants"

	"github.com/fleetworks/costengine/pkg/server"
	"github.com/fleetworks/costengine/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the cost allocation web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "server.yaml",
		"Path to the server configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadServerConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	// .env values take precedence over the config file.
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		cfg.AdminToken = token
	}

	db, err := sqlite.NewDB(sqlite.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	directory, err := tenants.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create tenant store: %w", err)
	}
	activityStore, err := activity.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create activity store: %w", err)
	}
	resultStore, err := results.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}
	calculator, err := engine.NewCalculator(db, activityStore, resultStore)
	if err != nil {
		return fmt.Errorf("failed to create calculator: %w", err)
	}
	reader, err := analytics.NewReader(resultStore)
	if err != nil {
		return fmt.Errorf("failed to create analytics reader: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Using database at `%s`.", cfg.DBPath)

	webAPI := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Host, cfg.Port),
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Calculator: calculator,
			Analytics:  reader,
			Directory:  directory,
			Logger:     logger,
			AdminToken: cfg.AdminToken,
		},
	})

	return webAPI.Start()
}
