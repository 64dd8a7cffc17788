package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vamartid/swapi-mirror/pkg/config"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to DATABASE_URL env var)
	URL string
}

// Connect establishes a database connection.
// If no URL is provided, it falls back to the configured database_url.
func Connect(cfg Config) (*gorm.DB, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = URL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Default to silent logging unless log_level is debug
	logMode := logger.Silent
	if config.Get().LogLevel == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// URL returns the configured database URL. DATABASE_URL from the
// environment wins over the config file.
func URL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	return config.Get().DatabaseURL
}

// QuoteIdentifier makes a string safe to splice into DDL as an
// identifier. Postgres has no placeholder support for those.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DatabaseName extracts the database name from a connection URL.
func DatabaseName(dbURL string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", fmt.Errorf("database URL %s names no database", u.Redacted())
	}
	return name, nil
}

// AdminURL rewrites a connection URL to point at the postgres
// maintenance database, for use while creating or dropping the target.
func AdminURL(dbURL string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	u.Path = "/postgres"
	return u.String(), nil
}

// CreateDatabase creates the named database. Creating a database that
// already exists is not an error.
func CreateDatabase(conn *sql.DB, name string) error {
	var exists bool
	err := conn.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if _, err := conn.Exec("CREATE DATABASE " + QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// DropDatabase drops the named database if it exists, terminating any
// open connections first.
func DropDatabase(conn *sql.DB, name string) error {
	_, err := conn.Exec(
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()",
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to terminate connections to %s: %w", name, err)
	}

	if _, err := conn.Exec("DROP DATABASE IF EXISTS " + QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", name, err)
	}
	return nil
}
