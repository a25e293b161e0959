// Package config provides configuration management for faunadb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// Two kinds of settings live here:
//
//   - application settings (logging, statistics precision) read from
//     ~/.config/faunadb/config.yaml, with env var overrides (FAUNADB_*);
//     precedence: CLI flags > env vars > config.yaml > defaults.
//   - the database connection document, a JSON file managed separately by
//     internal/ioconfig because it is overwritten wholesale on every
//     successful connect and its shape is fixed by the host application's
//     tooling that shares it.
package config

// Config represents the complete faunadb configuration.
type Config struct {
	// Connection holds the active database connection parameters.
	// Runtime field: loaded from connection.json or flags, never from
	// config.yaml.
	Connection ConnectionConfig

	Log LogConfig `mapstructure:"log" yaml:"log"`

	Stats StatsConfig `mapstructure:"stats" yaml:"stats"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `mapstructure:"level" yaml:"level"`

	// Format is "json" or "text".
	Format string `mapstructure:"format" yaml:"format"`

	// Destination is "file", "stdout" or "stderr".
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// StatsConfig contains settings for the statistics report generator.
type StatsConfig struct {
	// Precision is the number of decimal places used for means and
	// percentages in reports.
	Precision int `mapstructure:"precision" yaml:"precision"`
}

// New returns a Config with default values. The default config is always
// valid; all mutations go through Option functions.
func New() *Config {
	return &Config{
		Connection: DefaultConnection(""),
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			Destination: "file",
		},
		Stats: StatsConfig{
			Precision: 2,
		},
	}
}

// Update applies a slice of Option functions to the Config.
// Invalid options are rejected with warnings, the config stays valid.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts persistent fields (those kept in config.yaml) to a
// slice of Option functions. Runtime fields (Connection, HomeDir) are
// excluded.
func (c *Config) ToOptions() []Option {
	var res []Option
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}
	if i := c.Stats.Precision; i > 0 {
		res = append(res, OptStatsPrecision(i))
	}
	return res
}
