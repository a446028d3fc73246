package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/fleetworks/costengine/pkg/runtime/terminal"
	"github.com/fleetworks/costengine/pkg/services/config"
)

func main() {
	cfgPath := os.Getenv("COSTENGINE_CONFIG")
	if cfgPath == "" {
		usr, err := user.Current()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: resolve home directory: %v\n", err)
			os.Exit(1)
		}
		cfgPath = fmt.Sprintf("%s/.costenginecfg", usr.HomeDir)
	}

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load profiles from %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
