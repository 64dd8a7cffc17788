package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/vamartid/swapi-mirror/pkg/config"
	"github.com/vamartid/swapi-mirror/pkg/store"
	"github.com/vamartid/swapi-mirror/pkg/sync"
)

type Server struct {
	Router      *mux.Router
	DB          *gorm.DB
	Stores      store.Stores
	HealthStore store.HealthStore
	Syncer      *sync.Syncer
	Config      *config.Config
	Log         *slog.Logger
	srv         *http.Server
}

func NewServer(
	db *gorm.DB,
	stores store.Stores,
	healthStore store.HealthStore,
	syncer *sync.Syncer,
	cfg *config.Config,
	log *slog.Logger,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.ListenAddr(),
		// Sync passes against a slow upstream outlive the read/write
		// window, so the sync routes stream no body until done.
		WriteTimeout: 15 * time.Minute,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:      router,
		DB:          db,
		Stores:      stores,
		HealthStore: healthStore,
		Syncer:      syncer,
		Config:      cfg,
		Log:         log,
		srv:         srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
