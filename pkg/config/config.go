package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/swapi-mirror"
	ConfigFileName    = "swapi.yml"
)

// ValidLogLevels is the list of accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all mirror service settings.
type Config struct {
	// DatabaseURL is the Postgres connection string
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// UpstreamBaseURL is the root of the upstream catalog API
	UpstreamBaseURL string `yaml:"upstream_base_url" json:"upstream_base_url"`

	// BindAddress is the interface the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port" json:"port"`

	// PageSizeDefault is the list page size when the request names none
	PageSizeDefault int `yaml:"page_size_default" json:"page_size_default"`

	// PageSizeMax caps the page size a request may ask for
	PageSizeMax int `yaml:"page_size_max" json:"page_size_max"`

	// FetchRetries is the number of retry attempts per upstream page
	FetchRetries int `yaml:"fetch_retries" json:"fetch_retries"`

	// FetchTimeoutSeconds bounds a single upstream HTTP request
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFile is an optional path for the rotating JSON log; empty
	// means console only
	LogFile string `yaml:"log_file" json:"log_file"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents one setting with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment.
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values.
func newDefault() *Config {
	return &Config{
		DatabaseURL:         "",
		UpstreamBaseURL:     "https://swapi.dev/api",
		BindAddress:         "0.0.0.0",
		Port:                8080,
		PageSizeDefault:     10,
		PageSizeMax:         100,
		FetchRetries:        3,
		FetchTimeoutSeconds: 10,
		LogLevel:            "info",
		LogFile:             "",
		sources:             make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("SWAPI_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "upstream_base_url", "bind_address", "port",
		"page_size_default", "page_size_max", "fetch_retries",
		"fetch_timeout_seconds", "log_level", "log_file",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.UpstreamBaseURL != "" {
		c.UpstreamBaseURL = file.UpstreamBaseURL
		c.sources["upstream_base_url"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.PageSizeDefault != 0 {
		c.PageSizeDefault = file.PageSizeDefault
		c.sources["page_size_default"] = "file"
	}
	if file.PageSizeMax != 0 {
		c.PageSizeMax = file.PageSizeMax
		c.sources["page_size_max"] = "file"
	}
	if file.FetchRetries != 0 {
		c.FetchRetries = file.FetchRetries
		c.sources["fetch_retries"] = "file"
	}
	if file.FetchTimeoutSeconds != 0 {
		c.FetchTimeoutSeconds = file.FetchTimeoutSeconds
		c.sources["fetch_timeout_seconds"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.LogFile != "" {
		c.LogFile = file.LogFile
		c.sources["log_file"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("SWAPI_UPSTREAM_BASE_URL"); val != "" {
		c.UpstreamBaseURL = val
		c.sources["upstream_base_url"] = "environment"
	}
	if val := os.Getenv("SWAPI_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("SWAPI_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("SWAPI_PAGE_SIZE_DEFAULT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PageSizeDefault = i
			c.sources["page_size_default"] = "environment"
		}
	}
	if val := os.Getenv("SWAPI_PAGE_SIZE_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PageSizeMax = i
			c.sources["page_size_max"] = "environment"
		}
	}
	if val := os.Getenv("SWAPI_FETCH_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.FetchRetries = i
			c.sources["fetch_retries"] = "environment"
		}
	}
	if val := os.Getenv("SWAPI_FETCH_TIMEOUT_SECONDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.FetchTimeoutSeconds = i
			c.sources["fetch_timeout_seconds"] = "environment"
		}
	}
	if val := os.Getenv("SWAPI_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("SWAPI_LOG_FILE"); val != "" {
		c.LogFile = val
		c.sources["log_file"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Attributes lists every setting with its effective value and source.
// DatabaseURL is redacted, it usually carries credentials.
func (c *Config) Attributes() []Attribute {
	redactedDB := c.DatabaseURL
	if redactedDB != "" {
		redactedDB = "[redacted]"
	}
	values := map[string]string{
		"database_url":          redactedDB,
		"upstream_base_url":     c.UpstreamBaseURL,
		"bind_address":          c.BindAddress,
		"port":                  strconv.Itoa(c.Port),
		"page_size_default":     strconv.Itoa(c.PageSizeDefault),
		"page_size_max":         strconv.Itoa(c.PageSizeMax),
		"fetch_retries":         strconv.Itoa(c.FetchRetries),
		"fetch_timeout_seconds": strconv.Itoa(c.FetchTimeoutSeconds),
		"log_level":             c.LogLevel,
		"log_file":              c.LogFile,
	}
	attrs := make([]Attribute, 0, len(values))
	for _, name := range attributeNames() {
		attrs = append(attrs, Attribute{
			Name:   name,
			Value:  values[name],
			Source: c.Source(name),
		})
	}
	return attrs
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListenAddr returns the bind address and port joined for net.Listen.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// FetchTimeout returns the upstream request timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.PageSizeDefault < 1 {
		return fmt.Errorf("page_size_default must be positive, got %d", c.PageSizeDefault)
	}
	if c.PageSizeMax < c.PageSizeDefault {
		return fmt.Errorf("page_size_max (%d) must not be below page_size_default (%d)",
			c.PageSizeMax, c.PageSizeDefault)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch_retries must not be negative, got %d", c.FetchRetries)
	}
	if c.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("fetch_timeout_seconds must be positive, got %d", c.FetchTimeoutSeconds)
	}
	valid := false
	for _, l := range ValidLogLevels {
		if c.LogLevel == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("log_level must be one of %v, got %q", ValidLogLevels, c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured level onto slog's scale.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Watch reloads the global configuration whenever its file changes.
// It blocks until stop is closed. Editors replace files rather than
// write them in place, so the watch is on the directory.
func Watch(stop <-chan struct{}, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(Get().ConfigFilePath())); err != nil {
		return err
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != Get().ConfigFilePath() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := Reload(); err != nil {
				log.Warn("config reload failed", "error", err)
				continue
			}
			log.Info("configuration reloaded", "path", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)
		}
	}
}
