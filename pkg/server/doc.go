// Package server provides the HTTP server for the mirror API.
//
// This package implements the core HTTP server that serves the mirrored
// catalog. It uses gorilla/mux for routing and gorilla/handlers for
// request logging.
//
// # Server Setup
//
//	srv := server.NewServer(db, stores, healthStore, syncer, cfg, log)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - / - Service status
//   - /api/{category} - List and create records
//   - /api/{category}/{key} - Fetch, update and delete by natural key
//   - /api/sync - Full synchronization pass
//   - /api/sync/{category} - Single category synchronization
//
// Natural keys are upstream URLs. They contain slashes, so the router
// matches encoded paths and handlers unescape the key themselves.
package server
