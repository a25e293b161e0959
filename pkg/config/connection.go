package config

import (
	"fmt"
	"path/filepath"
)

// Backend identifiers accepted in the connection document.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ConnectionConfig describes which database backend to use and how to
// reach it. The JSON shape is shared with the host application's tooling
// and must stay stable.
type ConnectionConfig struct {
	// Type is "sqlite" or "postgres".
	Type string `json:"type"`

	// Path is the database file path. SQLite only.
	Path string `json:"path,omitempty"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `json:"host,omitempty"`

	// Port is the PostgreSQL server port number.
	Port int `json:"port,omitempty"`

	// Database is the PostgreSQL database name.
	Database string `json:"database,omitempty"`

	// User is the PostgreSQL database username.
	User string `json:"user,omitempty"`

	// Password is the PostgreSQL database password. Persisted in clear
	// text only when ioconfig.SavePassword is enabled.
	Password string `json:"password,omitempty"`
}

// DefaultConnection returns the built-in connection parameters: the host
// application's SQLite database under the user's home directory.
func DefaultConnection(homeDir string) ConnectionConfig {
	return ConnectionConfig{
		Type: BackendSQLite,
		Path: DefaultSQLitePath(homeDir),
	}
}

// DefaultPostgresConnection returns built-in server defaults used to
// pre-fill the connect command when no saved configuration exists.
func DefaultPostgresConnection() ConnectionConfig {
	return ConnectionConfig{
		Type:     BackendPostgres,
		Host:     "localhost",
		Port:     5432,
		Database: "pyarchinit",
		User:     "postgres",
	}
}

// DefaultSQLitePath returns the host application's default database file.
func DefaultSQLitePath(homeDir string) string {
	return filepath.Join(
		homeDir, "pyarchinit", "pyarchinit_DB_folder", "pyarchinit_db.sqlite",
	)
}

// String renders the connection for display. The password is never shown.
func (c ConnectionConfig) String() string {
	if c.Type == BackendSQLite {
		return fmt.Sprintf("SQLite: %s", c.Path)
	}
	return fmt.Sprintf("PostgreSQL: %s@%s:%d/%s",
		c.User, c.Host, c.Port, c.Database)
}
