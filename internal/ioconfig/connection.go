// Package ioconfig reads and writes the persisted database connection
// document. The document is a small JSON file shared with the host
// application's tooling; it is replaced wholesale on every save.
package ioconfig

import (
	"log/slog"
	"os"

	"github.com/gnames/gnfmt"
	"github.com/zooarch/faunadb/pkg/config"
)

// SavePassword controls whether the PostgreSQL password is persisted in
// clear text. When false the password field is blanked before writing
// and must be supplied again on the next connect.
var SavePassword = true

// LoadConnection reads the saved connection document. A missing file is
// not an error: it returns nil so the caller falls back to defaults.
// An unparsable file is logged and also treated as absent.
func LoadConnection(homeDir string) *config.ConnectionConfig {
	path := config.ConnectionFilePath(homeDir)

	bs, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Cannot read connection file", "path", path, "error", err)
		}
		return nil
	}

	var conn config.ConnectionConfig
	enc := gnfmt.GNjson{}
	if err := enc.Decode(bs, &conn); err != nil {
		slog.Warn("Connection file is not valid JSON, ignoring it",
			"path", path, "error", err)
		return nil
	}

	if conn.Type != config.BackendSQLite && conn.Type != config.BackendPostgres {
		slog.Warn("Connection file has unknown backend type, ignoring it",
			"path", path, "type", conn.Type)
		return nil
	}

	return &conn
}

// SaveConnection replaces the connection document with the given
// parameters. With SavePassword disabled the password is dropped from
// the persisted copy.
func SaveConnection(homeDir string, conn config.ConnectionConfig) error {
	path := config.ConnectionFilePath(homeDir)

	if !SavePassword {
		conn.Password = ""
	}

	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(conn)
	if err != nil {
		return SaveError(path, err)
	}

	if err := os.WriteFile(path, bs, 0600); err != nil {
		return SaveError(path, err)
	}

	return nil
}
