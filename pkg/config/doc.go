// Package config provides configuration management for the mirror
// service.
//
// This package handles loading and validating service configuration
// from a YAML file and environment variables.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - swapi.yml under SWAPI_CONFIG_PATH (optional)
//   - Environment variables (take precedence)
//
// # Key Configuration Options
//
//   - DATABASE_URL: Database connection
//   - SWAPI_UPSTREAM_BASE_URL: Upstream catalog root
//   - SWAPI_PORT: Server listen port
//   - SWAPI_LOG_LEVEL: Logging verbosity
package config
