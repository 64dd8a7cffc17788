package endpoints

import (
	"net/http"
	"os"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/server"
)

// StatusResponse is the body of the root status endpoint.
type StatusResponse struct {
	Status     string   `json:"status"`
	Version    string   `json:"version"`
	Database   string   `json:"database"`
	Categories []string `json:"categories"`
}

// RegisterStatusEndpoints registers the status endpoint.
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Service status
	s.Router.HandleFunc("/", handleStatus(s)).Methods("GET")
}

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("SWAPI_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		status := "ok"
		dbStatus := "ok"
		code := http.StatusOK
		if err := s.HealthStore.CheckConnectivity(r.Context()); err != nil {
			status = "degraded"
			dbStatus = "unavailable"
			code = http.StatusServiceUnavailable
		}

		categories := make([]string, 0, len(model.Categories()))
		for _, c := range model.Categories() {
			categories = append(categories, string(c))
		}

		respondWithJSON(w, code, StatusResponse{
			Status:     status,
			Version:    version,
			Database:   dbStatus,
			Categories: categories,
		})
	}
}
