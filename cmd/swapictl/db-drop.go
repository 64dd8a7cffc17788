package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/vamartid/swapi-mirror/pkg/db"
)

// dbDropCmd represents the db drop command
var dbDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the mirror database",
	Long: `Drop the mirror database.

All mirrored data is lost. The command asks for confirmation unless
--force is given.

Example:
  swapictl db drop
  swapictl db drop --force`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		if err := dropDatabase(force); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to drop database: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbDropCmd)
	dbDropCmd.Flags().BoolP("force", "f", false, "drop without confirmation")
}

func dropDatabase(force bool) error {
	dbURL := db.URL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	name, err := db.DatabaseName(dbURL)
	if err != nil {
		return err
	}

	if !force {
		fmt.Printf("Drop database %s and all mirrored data? [y/N] ", name)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
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

	if err := db.DropDatabase(conn, name); err != nil {
		return err
	}

	fmt.Printf("Dropped database %s\n", name)
	return nil
}
