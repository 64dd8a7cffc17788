// Package main provides swapictl, the server and operations CLI for the
// Star Wars catalog mirror.
//
// The mirror keeps a local PostgreSQL copy of the upstream catalog and
// serves it over a REST API, with a synchronization engine that pulls
// upstream records and resolves their cross references to local keys.
//
// # Architecture
//
// The service is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/sync: Synchronization engine
//   - pkg/swapi: Upstream API client with pagination and retries
//   - pkg/store: Store interfaces and error taxonomy
//   - pkg/store/gorm: GORM-backed stores and the reference resolver
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/config: Configuration management
//   - pkg/logging: Logger assembly
//
// # Quick Start
//
//	# Create the database and schema
//	swapictl db create
//	swapictl db migrate
//
//	# Pull the upstream catalog
//	swapictl sync
//
//	# Start the server
//	swapictl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - SWAPI_UPSTREAM_BASE_URL: Upstream catalog root
//   - SWAPI_LOG_LEVEL: Log level (debug, info, warn, error)
//   - SWAPI_PORT: Server port (default: 8080)
package main
