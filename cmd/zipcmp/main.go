package main

import (
	"fmt"
	"os"

	"github.com/mcdonaldj/zipcmp/internal/cli"
	"github.com/mcdonaldj/zipcmp/internal/config"
	"github.com/mcdonaldj/zipcmp/internal/tui"
)

// version is set via ldflags at build time: -ldflags "-X main.version=x.y.z"
var version = "dev"

func main() {
	// Handle TUI mode (no args or ui/tui command)
	if len(os.Args) < 2 || os.Args[1] == "ui" || os.Args[1] == "tui" {
		var paths [2]string
		if len(os.Args) > 2 {
			copy(paths[:], os.Args[2:])
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(cli.ExitError)
		}

		if err := tui.Run(cfg, paths[0], paths[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitError)
		}
		return
	}

	// Use CLI for all other commands
	c := cli.New(version)
	c.Run()
}
