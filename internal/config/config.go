// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values for the API server and CLI.
// Values are populated by Load from environment variables, falling back to
// the file named by CONFIG_FILE, then to defaults.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreDriver selects where trips are kept: memory (default), postgres or sqlite.
	StoreDriver string

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string

	// SQLitePath is the database file for the sqlite driver. Defaults to "tripcanvas.db".
	SQLitePath string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// ConfigFile is the optional TOML, YAML or JSON file read by Load.
	ConfigFile string
}

// Level parses LogLevel, falling back to info for unknown values.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Loader reads Config through a private viper instance so that the same
// source can be re-read when the config file changes.
type Loader struct {
	v    *viper.Viper
	file string
}

// NewLoader returns a Loader with every key's default registered and
// environment lookup enabled.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("store_driver", DriverMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("sqlite_path", "tripcanvas.db")
	v.SetDefault("max_body_bytes", 1<<20)
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Load reads configuration and returns a Config.
// Returns an error listing every variable that is missing or invalid.
func Load() (Config, error) {
	return NewLoader().Load()
}

// SetFile names the config file to read, overriding CONFIG_FILE.
func (l *Loader) SetFile(path string) {
	l.file = path
}

// Load reads the config file named by SetFile or CONFIG_FILE, if any, then
// resolves every key and validates the result.
func (l *Loader) Load() (Config, error) {
	path := l.file
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" && l.v.ConfigFileUsed() == "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	return l.resolve()
}

func (l *Loader) resolve() (Config, error) {
	cfg := Config{
		Port:         l.v.GetString("port"),
		LogLevel:     l.v.GetString("log_level"),
		CORSOrigins:  splitCSV(l.v.GetString("cors_origins")),
		StoreDriver:  strings.ToLower(l.v.GetString("store_driver")),
		DatabaseURL:  l.v.GetString("database_url"),
		SQLitePath:   l.v.GetString("sqlite_path"),
		MaxBodyBytes: l.v.GetInt64("max_body_bytes"),
		ConfigFile:   l.v.ConfigFileUsed(),
	}

	var problems []string

	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL (required when STORE_DRIVER=postgres)")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER (unknown driver %q)", cfg.StoreDriver))
	}
	if cfg.StoreDriver == DriverSQLite && cfg.SQLitePath == "" {
		problems = append(problems, "SQLITE_PATH")
	}
	if cfg.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES (must be positive)")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}

	return cfg, nil
}

// Watch calls fn with the reloaded Config each time the config file changes.
// It reports false, and does nothing, when no config file was loaded.
// Reloads that fail validation are logged and skipped.
func (l *Loader) Watch(logger *slog.Logger, fn func(Config)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.resolve()
		if err != nil {
			logger.Warn("config reload rejected", "file", e.Name, "error", err)
			return
		}
		logger.Info("config reloaded", "file", e.Name, "op", e.Op.String())
		fn(cfg)
	})
	l.v.WatchConfig()
	return true
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
