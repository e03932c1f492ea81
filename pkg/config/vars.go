package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "capexdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/capexdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory of the embedded database file.
// Returns ~/.local/share/capexdb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/capexdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/capexdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatabaseFilePath returns the default SQLite database file.
// Returns ~/.local/share/capexdb/capex.db by default.
func DatabaseFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "capex.db")
}
