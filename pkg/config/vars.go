package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "lexdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/lexdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory for generated data such as the
// full-text search index.
// Returns ~/.local/share/lexdb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/lexdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/lexdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// FTSFilePath returns the default location of the SQLite file
// that keeps full-text search tables.
func FTSFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "search.sqlite")
}
