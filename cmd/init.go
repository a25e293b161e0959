package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/zooarch/faunadb/internal/iostore"
)

// initCmd runs the schema bootstrap explicitly. Other commands also
// bootstrap on connect but swallow failures; init surfaces them.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the fauna tables in the connected database",
	Long: `Creates the fauna tables and seeds the controlled vocabularies in
the connected database. Safe to run repeatedly: existing tables and
vocabulary values are left alone.

Every command bootstraps the schema on connect and logs failures
without stopping; init is the way to see those failures directly.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := iostore.InitSchema(cmd.Context(), cfg.Connection); err != nil {
		gn.PrintErrorMessage(err)
		printConnHints(err)
		return err
	}
	gn.Info("Schema is ready on <em>%s</em>", cfg.Connection.String())
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
