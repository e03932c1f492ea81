// Package config holds capexdb settings and their defaults.
//
// Values come from, in order of precedence, CLI flags, CAPEXDB_*
// environment variables, config.yaml and New(). The package does no
// I/O of its own apart from gn.Warn messages about rejected options.
//
// A Config is only changed through Option functions, so a Config that
// started valid stays valid. ToOptions returns the persistent subset,
// which is also what config.yaml and the environment can set:
//
//	CAPEXDB_DATABASE_DRIVER=postgres
//	CAPEXDB_DATABASE_HOST=localhost
//	CAPEXDB_LOG_LEVEL=info
//	CAPEXDB_JOBS_NUMBER=8
//
// HomeDir and Import.Overwrite exist for a single run only.
package config

import (
	"runtime"
)

// Config represents the complete capexdb configuration.
type Config struct {
	// Database contains connection settings for the planning store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings of the bulk import.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used when totals
	// are recomputed in memory.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains store connection parameters.
type DatabaseConfig struct {
	// Driver selects the store: "sqlite" (embedded file) or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file. When empty, the file is kept
	// in the data directory (see DatabaseFilePath).
	Path string `mapstructure:"path" yaml:"path"`

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

// ImportConfig contains settings for the import command.
type ImportConfig struct {
	// ShowProgress turns on the progress bar for imported rows.
	// Pointer distinguishes unset value from false.
	ShowProgress *bool `mapstructure:"show_progress" yaml:"show_progress"`

	// Overwrite lets imported rows replace projects with the same
	// code. Set by the --overwrite flag.
	Overwrite bool `mapstructure:"-" yaml:"-"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Format      string `mapstructure:"format"      yaml:"format"`      // json, text
	Level       string `mapstructure:"level"       yaml:"level"`       // debug, info, warn, error
	Destination string `mapstructure:"destination" yaml:"destination"` // file, stderr, stdout
}

// New returns the default Config. It uses the embedded SQLite store
// and writes JSON logs to a file.
func New() *Config {
	showProgress := true
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "capex",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			ShowProgress: &showProgress,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// WithProgress reports whether import progress should be displayed.
func (c *Config) WithProgress() bool {
	return c.Import.ShowProgress != nil && *c.Import.ShowProgress
}

// SQLitePath returns the SQLite file used by the "sqlite" driver.
func (c *Config) SQLitePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return DatabaseFilePath(c.HomeDir)
}
