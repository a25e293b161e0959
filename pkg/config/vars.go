package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "faunadb"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/faunadb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/faunadb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ConnectionFilePath returns the full path to the persisted connection
// document.
func ConnectionFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "connection.json")
}
