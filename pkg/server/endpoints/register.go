package endpoints

import (
	"github.com/vamartid/swapi-mirror/pkg/server"
)

// RegisterAll registers all API endpoints on the server.
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)

	// Sync routes go first: mux matches in registration order and
	// /api/sync must win over /api/{category}.
	RegisterSyncEndpoints(srv)
	RegisterCategoryEndpoints(srv)
}
