package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vamartid/swapi-mirror/pkg/config"
	"github.com/vamartid/swapi-mirror/pkg/db"
	"github.com/vamartid/swapi-mirror/pkg/logging"
	"github.com/vamartid/swapi-mirror/pkg/server"
	"github.com/vamartid/swapi-mirror/pkg/server/endpoints"
	"github.com/vamartid/swapi-mirror/pkg/store"
	gormstore "github.com/vamartid/swapi-mirror/pkg/store/gorm"
	"github.com/vamartid/swapi-mirror/pkg/swapi"
	"github.com/vamartid/swapi-mirror/pkg/sync"
)

func defaultBindAddress() string {
	return config.Get().BindAddress
}

func defaultPort() string {
	return strconv.Itoa(config.Get().Port)
}

func defaultPortInt() int {
	return config.Get().Port
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the mirror API server",
	Long: `Run the mirror API server.

The server requires a reachable PostgreSQL database, configured through
DATABASE_URL or the database_url config key.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
		if db.URL() == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		log := logging.New(logging.Options{
			Level:   cfg.SlogLevel(),
			LogFile: cfg.LogFile,
		})

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("running database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		if host, _ := cmd.Flags().GetString("bind-address"); host != "" {
			cfg.BindAddress = host
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				cfg.Port = p
			}
		}

		stores := gormstore.NewStores(database)
		healthStore := gormstore.NewHealthStore(database)
		client := swapi.NewClient(cfg.UpstreamBaseURL, cfg.FetchRetries, cfg.FetchTimeout(), log)
		newResolver := func() store.Resolver { return gormstore.NewResolver(database) }
		syncer := sync.New(sync.WrapClient(client), stores, newResolver, log)

		s := server.NewServer(database, stores, healthStore, syncer, cfg, log)
		endpoints.RegisterAll(s)

		stop := make(chan struct{})
		defer close(stop)
		go func() {
			if err := config.Watch(stop, log); err != nil {
				log.Warn("config watch unavailable", "error", err)
			}
		}()

		log.Info("server listening", "addr", cfg.ListenAddr())
		if err := s.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
