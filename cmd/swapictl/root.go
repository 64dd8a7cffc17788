package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swapictl",
	Short: "Star Wars catalog mirror server and tooling",
	Long:  `A server and operations tool for a local PostgreSQL mirror of the Star Wars catalog API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
