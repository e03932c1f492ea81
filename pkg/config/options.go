package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Invalid values are reported with a warning and leave the
// Config unchanged.
type Option func(*Config)

// enumValues lists accepted values for enumerated settings.
var enumValues = map[string][]string{
	"Database.Driver":  {"postgres", "sqlite"},
	"Database.SSLMode": {"disable", "require", "verify-ca", "verify-full"},
	"Log.Level":        {"debug", "error", "info", "warn"},
	"Log.Format":       {"json", "text"},
	"Log.Destination":  {"file", "stderr", "stdout"},
}

// OptDatabaseDriver sets the store driver: "sqlite" or "postgres".
func OptDatabaseDriver(s string) Option {
	return enumOpt("Database.Driver", s, func(c *Config, v string) {
		c.Database.Driver = v
	})
}

// OptDatabasePath sets the SQLite database file.
func OptDatabasePath(s string) Option {
	return stringOpt("Database Path", s, func(c *Config, v string) {
		c.Database.Path = v
	})
}

// OptDatabaseHost sets the PostgreSQL host.
func OptDatabaseHost(s string) Option {
	return stringOpt("Database Host", s, func(c *Config, v string) {
		c.Database.Host = v
	})
}

// OptDatabasePort sets the PostgreSQL port.
func OptDatabasePort(i int) Option {
	return intOpt("Database Port", i, func(c *Config, v int) {
		c.Database.Port = v
	})
}

func OptDatabaseUser(s string) Option {
	return stringOpt("Database User", s, func(c *Config, v string) {
		c.Database.User = v
	})
}

func OptDatabasePassword(s string) Option {
	return stringOpt("Database Password", s, func(c *Config, v string) {
		c.Database.Password = v
	})
}

// OptDatabaseDatabase sets the PostgreSQL database name.
func OptDatabaseDatabase(s string) Option {
	return stringOpt("Database Name", s, func(c *Config, v string) {
		c.Database.Database = v
	})
}

// OptDatabaseSSLMode sets the PostgreSQL sslmode parameter.
func OptDatabaseSSLMode(s string) Option {
	return enumOpt("Database.SSLMode", s, func(c *Config, v string) {
		c.Database.SSLMode = v
	})
}

// OptImportShowProgress turns the import progress bar on or off.
// A nil pointer means "not set" and keeps the current value.
func OptImportShowProgress(b *bool) Option {
	return func(c *Config) {
		if b == nil {
			return
		}
		val := *b
		c.Import.ShowProgress = &val
	}
}

// OptImportOverwrite allows import to replace existing projects.
// It is a per-run setting and never written to config.yaml.
func OptImportOverwrite(b bool) Option {
	return func(c *Config) {
		c.Import.Overwrite = b
	}
}

func OptLogLevel(s string) Option {
	return enumOpt("Log.Level", s, func(c *Config, v string) {
		c.Log.Level = v
	})
}

func OptLogFormat(s string) Option {
	return enumOpt("Log.Format", s, func(c *Config, v string) {
		c.Log.Format = v
	})
}

func OptLogDestination(s string) Option {
	return enumOpt("Log.Destination", s, func(c *Config, v string) {
		c.Log.Destination = v
	})
}

// OptJobsNumber sets how many workers score and validate rows in
// parallel.
func OptJobsNumber(i int) Option {
	return intOpt("Jobs Number", i, func(c *Config, v int) {
		c.JobsNumber = v
	})
}

// OptHomeDir sets the directory that config, data and logs live
// under. It is set at startup and never written to config.yaml.
func OptHomeDir(s string) Option {
	return stringOpt("Home Directory", s, func(c *Config, v string) {
		c.HomeDir = v
	})
}

func stringOpt(name, s string, set func(*Config, string)) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s == "" {
			gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
			return
		}
		set(c, s)
	}
}

func intOpt(name string, i int, set func(*Config, int)) Option {
	return func(c *Config) {
		if i <= 0 {
			gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
			return
		}
		set(c, i)
	}
}

func enumOpt(name, s string, set func(*Config, string)) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		vals := enumValues[name]
		if slices.Contains(vals, s) {
			set(c, s)
			return
		}

		var sb strings.Builder
		for _, v := range vals {
			fmt.Fprintf(&sb, "\n  * %s", v)
		}
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: %s\nIgnoring...",
			name, s, sb.String(),
		)
	}
}
