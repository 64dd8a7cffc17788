package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vamartid/swapi-mirror/pkg/config"
	"github.com/vamartid/swapi-mirror/pkg/server"
	"github.com/vamartid/swapi-mirror/pkg/server/endpoints"
	"github.com/vamartid/swapi-mirror/pkg/store"
	gormstore "github.com/vamartid/swapi-mirror/pkg/store/gorm"
	"github.com/vamartid/swapi-mirror/pkg/swapi"
	syncengine "github.com/vamartid/swapi-mirror/pkg/sync"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	DatabaseURL string
	Upstream    *fakeUpstream
	ServerURL   string
	HTTPClient  *http.Client

	apiServer      *httptest.Server
	upstreamServer *httptest.Server
}

// fakeUpstream serves canned catalog pages the way the real upstream
// does: GET /{category}/?page=N returning {count, next, results}.
type fakeUpstream struct {
	// Pages maps a category to its ordered result pages.
	Pages map[string][][]map[string]any
	url   string
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := filepath.Base(filepath.Clean(r.URL.Path))
		pages, ok := f.Pages[category]
		if !ok {
			http.NotFound(w, r)
			return
		}

		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			_, _ = fmt.Sscanf(p, "%d", &page)
		}
		if page < 1 || page > len(pages) {
			http.NotFound(w, r)
			return
		}

		count := 0
		for _, p := range pages {
			count += len(p)
		}
		body := map[string]any{
			"count":   count,
			"next":    nil,
			"results": pages[page-1],
		}
		if page < len(pages) {
			body["next"] = fmt.Sprintf("%s/%s/?page=%d", f.url, category, page+1)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
}

// NewTestContext starts a PostgreSQL testcontainer, migrates the schema
// and serves the mirror in-process against a fake upstream.
func NewTestContext(ctx context.Context, pages map[string][][]map[string]any) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("swapi_test"),
		tcpostgres.WithUsername("swapi"),
		tcpostgres.WithPassword("swapi"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://swapi:swapi@%s:%s/swapi_test?sslmode=disable", host, port.Port())

	if err := runMigrations(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	upstream := &fakeUpstream{Pages: pages}
	upstreamServer := httptest.NewServer(upstream.handler())
	upstream.url = upstreamServer.URL

	cfg := &config.Config{
		DatabaseURL:         connStr,
		UpstreamBaseURL:     upstreamServer.URL,
		BindAddress:         "127.0.0.1",
		Port:                0,
		PageSizeDefault:     10,
		PageSizeMax:         100,
		FetchRetries:        2,
		FetchTimeoutSeconds: 5,
		LogLevel:            "error",
	}

	log := slog.Default()
	stores := gormstore.NewStores(db)
	newResolver := func() store.Resolver { return gormstore.NewResolver(db) }
	client := swapi.NewClient(upstreamServer.URL, cfg.FetchRetries, cfg.FetchTimeout(), log)
	syncer := syncengine.New(syncengine.WrapClient(client), stores, newResolver, log)

	s := server.NewServer(db, stores, gormstore.NewHealthStore(db), syncer, cfg, log)
	endpoints.RegisterAll(s)
	apiServer := httptest.NewServer(s.Router)

	return &TestContext{
		DB:             db,
		Container:      pgContainer,
		DatabaseURL:    connStr,
		Upstream:       upstream,
		ServerURL:      apiServer.URL,
		HTTPClient:     &http.Client{Timeout: 10 * time.Second},
		apiServer:      apiServer,
		upstreamServer: upstreamServer,
	}, nil
}

// runMigrations applies the schema from db/migrations.
func runMigrations(dbURL string) error {
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "db", "migrations"))
	if err != nil {
		return err
	}
	m, err := migrate.New("file://"+migrationsDir, dbURL+"&x-migrations-table=swapi_schema_migrations")
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.apiServer != nil {
		tc.apiServer.Close()
	}
	if tc.upstreamServer != nil {
		tc.upstreamServer.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
