package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zooarch/faunadb/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after merging defaults, config.yaml, the
FAUNADB_* environment variables and the saved connection. The password
is never shown.`,
	RunE: runConfig,
}

// configView is the printable shape of the configuration. The
// connection renders as its display string so the password stays out.
type configView struct {
	Connection string             `yaml:"connection"`
	Log        config.LogConfig   `yaml:"log"`
	Stats      config.StatsConfig `yaml:"stats"`
	ConfigFile string             `yaml:"config_file"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	view := configView{
		Connection: cfg.Connection.String(),
		Log:        cfg.Log,
		Stats:      cfg.Stats,
		ConfigFile: config.ConfigFilePath(homeDir),
	}

	bs, err := yaml.Marshal(view)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Print(string(bs))
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
