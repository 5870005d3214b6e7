// Package config provides configuration management for lexdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: url, host, port, user, password, database, ssl_mode
//   - Import: batch_size, skip_failed_batches, extract_fields
//   - FTS: path
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use LEXDB_ prefix with underscores for nesting:
//
//	LEXDB_DATABASE_URL=postgres://user:pass@db:5432/lexdb
//	LEXDB_DATABASE_HOST=localhost
//	LEXDB_IMPORT_BATCH_SIZE=1000
//	LEXDB_LOG_LEVEL=info
//
// The conventional DATABASE_URL variable is honored as well when
// LEXDB_DATABASE_URL is not set.
package config

import (
	"fmt"
	"net/url"
)

// Config represents the complete lexdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings of bulk import commands.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// FTS contains settings of the full-text search index.
	FTS FTSConfig `mapstructure:"fts" yaml:"fts"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// URL is a complete connection string. When it is set, it takes
	// precedence over all other connection fields.
	URL string `mapstructure:"url" yaml:"url"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ImportConfig contains settings for CSV and fixture imports.
type ImportConfig struct {
	// BatchSize is the number of rows sent in one multi-row INSERT.
	// It is clamped down if a statement would exceed the bound-parameter
	// limit of the database driver.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// SkipFailedBatches keeps the import running when a batch insert
	// fails. The failed batch is logged and its rows are lost.
	// Default: false (the first failed batch aborts the run).
	SkipFailedBatches bool `mapstructure:"skip_failed_batches" yaml:"skip_failed_batches"`

	// ExtractFields fills empty metadata columns (case_id, year, court,
	// circuit, city, judgment number and date) with values found in the
	// judgment text. Values present in the CSV are never replaced.
	// Default: false.
	ExtractFields bool `mapstructure:"extract_fields" yaml:"extract_fields"`
}

// FTSConfig contains settings of the SQLite full-text search index.
type FTSConfig struct {
	// Path to the SQLite file with FTS5 tables. Empty means the default
	// location inside the data directory.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Defaults point to a local development database.
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "lexdb",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			BatchSize: 1_000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
	}

	return res
}

// DSN returns the connection string for the database. The URL field
// wins, otherwise the string is assembled from individual fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Database,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// FTSPath returns the location of the full-text search index file.
func (c *Config) FTSPath() string {
	if c.FTS.Path != "" {
		return c.FTS.Path
	}
	return FTSFilePath(c.HomeDir)
}
