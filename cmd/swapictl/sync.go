package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vamartid/swapi-mirror/pkg/config"
	"github.com/vamartid/swapi-mirror/pkg/db"
	"github.com/vamartid/swapi-mirror/pkg/logging"
	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/store"
	gormstore "github.com/vamartid/swapi-mirror/pkg/store/gorm"
	"github.com/vamartid/swapi-mirror/pkg/swapi"
	"github.com/vamartid/swapi-mirror/pkg/sync"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [category]",
	Short: "Pull the upstream catalog into the local mirror",
	Long: `Pull the upstream catalog into the local mirror.

Without arguments every category is synchronized in dependency order.
Passing a category name restricts the pass to that category; references
to records of other categories still get placeholder rows.

Example:
  swapictl sync
  swapictl sync planets`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		log := logging.New(logging.Options{
			Level:   cfg.SlogLevel(),
			LogFile: cfg.LogFile,
		})

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		client := swapi.NewClient(cfg.UpstreamBaseURL, cfg.FetchRetries, cfg.FetchTimeout(), log)
		syncer := sync.New(
			sync.WrapClient(client),
			gormstore.NewStores(database),
			func() store.Resolver { return gormstore.NewResolver(database) },
			log,
		)

		ctx := context.Background()

		if len(args) == 1 {
			category, err := model.ParseCategory(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unknown category %q\n", args[0])
				os.Exit(1)
			}
			report := syncer.SyncCategory(ctx, category)
			fmt.Printf("%-12s fetched=%d upserted=%d failed=%d\n",
				category, report.Fetched, report.Upserted, report.Failed)
			if report.Error != "" {
				fmt.Fprintf(os.Stderr, "Sync aborted: %s\n", report.Error)
				os.Exit(1)
			}
			return
		}

		report := syncer.SyncAll(ctx)
		fmt.Print(report.FormatText())
		if len(report.Aborted()) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
