package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vamartid/swapi-mirror/pkg/config"
	"github.com/vamartid/swapi-mirror/pkg/db"
)

// configurationCheckCmd represents the configuration check command
var configurationCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the current configuration",
	Long: `Validate the current state of the configuration file and environment.

A running server picks up file changes on its own; this command only
verifies that the sources parse and pass validation.

Example:
  swapictl configuration check`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkConfiguration(); err != nil {
			fmt.Fprintf(os.Stderr, "Configuration check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration is valid.")
	},
}

func init() {
	configurationCmd.AddCommand(configurationCheckCmd)
}

func checkConfiguration() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("Config file: %s\n", cfg.ConfigFilePath())

	if err := cfg.Validate(); err != nil {
		return err
	}

	if db.URL() == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	return nil
}
