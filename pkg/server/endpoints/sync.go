package endpoints

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/server"
)

// RegisterSyncEndpoints registers the synchronization triggers. These
// must be registered before the category CRUD routes; mux matches in
// registration order and /api/sync would otherwise be swallowed by
// /api/{category}.
func RegisterSyncEndpoints(s *server.Server) {
	apiRouter := s.Router.PathPrefix("/api").Subrouter()

	// POST /api/sync - Run a full synchronization pass
	apiRouter.HandleFunc("/sync", handleSyncAll(s)).Methods("POST")

	// POST /api/sync/{category} - Synchronize one category
	apiRouter.HandleFunc("/sync/{category}", handleSyncCategory(s)).Methods("POST")
}

func handleSyncAll(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := s.Syncer.SyncAll(r.Context())

		code := http.StatusOK
		if len(report.Aborted()) > 0 {
			code = http.StatusBadGateway
		}
		respondWithJSON(w, code, report)
	}
}

func handleSyncCategory(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["category"]
		category, err := model.ParseCategory(name)
		if err != nil {
			respondWithError(w, http.StatusNotFound, fmt.Sprintf("unknown category %q", name))
			return
		}

		report := s.Syncer.SyncCategory(r.Context(), category)

		code := http.StatusOK
		if report.Error != "" {
			code = http.StatusBadGateway
		}
		respondWithJSON(w, code, map[string]interface{}{
			"category": category,
			"report":   report,
		})
	}
}
