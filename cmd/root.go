package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zooarch/faunadb/internal/ioconfig"
	"github.com/zooarch/faunadb/internal/iofs"
	"github.com/zooarch/faunadb/internal/iologger"
	"github.com/zooarch/faunadb/internal/iostore"
	app "github.com/zooarch/faunadb/pkg"
	"github.com/zooarch/faunadb/pkg/config"
	"github.com/zooarch/faunadb/pkg/fauna"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "faunadb",
	Short:   "Manages zooarchaeological records of archaeological excavations",
	Long: `faunadb manages the fauna observation sheets ("schede FR") of
archaeological excavations: one sheet per stratigraphic unit observation,
with controlled vocabularies, free-text search, summary statistics and
printable PDF sheets.

The records live in the excavation database itself, either the SQLite
file of the recording application or a shared PostgreSQL server. Run
'faunadb connect' once to choose the database; every other command uses
the saved connection.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Every invocation gets its own run identity in the logs.
	slog.SetDefault(slog.Default().With("run_id", uuid.New().String()))

	// The saved connection document wins over built-in defaults.
	if conn := ioconfig.LoadConnection(homeDir); conn != nil {
		cfg.Update([]config.Option{config.OptConnection(*conn)})
	} else {
		cfg.Update([]config.Option{
			config.OptConnection(config.DefaultConnection(homeDir)),
		})
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"backend", cfg.Connection.Type,
	)

	return nil
}

// openStore connects to the configured database and runs the schema
// bootstrap. Callers own the returned store and must Close it.
func openStore(ctx context.Context) (fauna.Store, error) {
	st, err := iostore.New(ctx, cfg.Connection)
	if err != nil {
		gn.PrintErrorMessage(err)
		printConnHints(err)
		return nil, err
	}
	return st, nil
}

// printConnHints suggests a fix matching the failure category.
func printConnHints(err error) {
	switch iostore.CategorizeConnError(err) {
	case iostore.ConnFailureMissingPassword:
		gn.Warn("No password given, retry with <em>faunadb connect --password</em>")
	case iostore.ConnFailureAuthentication:
		gn.Warn("Check the username and password with <em>faunadb connect --test</em>")
	case iostore.ConnFailureUnreachable:
		gn.Warn("Check the host, port or file path with <em>faunadb connect --test</em>")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "faunadb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for faunadb")
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions().
	v.SetEnvPrefix("FAUNADB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// Statistics configuration
	v.BindEnv("stats.precision", "STATS_PRECISION")

	v.AutomaticEnv()
}
