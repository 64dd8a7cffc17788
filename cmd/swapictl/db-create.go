package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/vamartid/swapi-mirror/pkg/db"
)

// dbCreateCmd represents the db create command
var dbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the mirror database",
	Long: `Create the mirror database.

The database name is taken from DATABASE_URL. The command connects to
the postgres maintenance database on the same server, so the configured
role needs CREATEDB.

Example:
  swapictl db create`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := createDatabase(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbCreateCmd)
}

func createDatabase() error {
	dbURL := db.URL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	name, err := db.DatabaseName(dbURL)
	if err != nil {
		return err
	}
	adminURL, err := db.AdminURL(dbURL)
	if err != nil {
		return err
	}

	conn, err := sql.Open("postgres", adminURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := db.CreateDatabase(conn, name); err != nil {
		return err
	}

	fmt.Printf("Database %s is ready\n", name)
	return nil
}
