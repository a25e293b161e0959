// Package iofs manages the application's files: configuration
// directories, the default config file, and the embedded SQL resources
// the schema bootstrap runs.
package iofs

import (
	"embed"
	"os"

	"github.com/zooarch/faunadb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed sql/*.sql
var sqlFS embed.FS

// SchemaScripts lists the embedded SQL resources in execution order.
// The vocabulary script runs first so its seed values exist before any
// record references them.
var SchemaScripts = []string{
	"sql/create_fauna_voc.sql",
	"sql/create_fauna_table.sql",
}

// ReadScript returns the text of an embedded SQL resource.
func ReadScript(name string) (string, error) {
	bs, err := sqlFS.ReadFile(name)
	if err != nil {
		return "", ReadFileError(name, err)
	}
	return string(bs), nil
}

// EnsureDirs creates the configuration and log directories if they do
// not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default config.yaml to the
// config directory unless a config file is already there.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
