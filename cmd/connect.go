package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/zooarch/faunadb/internal/ioconfig"
	"github.com/zooarch/faunadb/internal/iostore"
	"github.com/zooarch/faunadb/pkg/config"
)

// connectCmd chooses and verifies the database connection. The new
// connection is fully dialed and checked before the saved document is
// replaced, so a failed attempt never loses a working configuration.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Choose the excavation database and save the connection",
	Long: `Chooses the database that holds the fauna records and saves the
connection for later commands.

With --sqlite the records live in the recording application's SQLite
file; with --host and friends they live on a shared PostgreSQL server.
Without flags the saved connection (or the built-in default) is tested
as is.

The connection is verified before saving: the database must be
reachable and must contain the stratigraphic unit table of the
recording application.`,
	Example: `  faunadb connect --test
  faunadb connect --sqlite ~/pyarchinit/pyarchinit_DB_folder/pyarchinit_db.sqlite
  faunadb connect --host db.example.org --database pyarchinit --user digger --password s3cret
  faunadb connect --host db.example.org --user digger --password s3cret --no-save-password`,
	RunE: runConnect,
}

func runConnect(cmd *cobra.Command, args []string) error {
	conn, err := connectionFromFlags(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	msg, err := iostore.TestConnection(cmd.Context(), conn)
	if err != nil {
		gn.PrintErrorMessage(err)
		printConnHints(err)
		return err
	}
	gn.Info(msg)

	testOnly, _ := cmd.Flags().GetBool("test")
	if testOnly {
		return nil
	}

	noSavePwd, _ := cmd.Flags().GetBool("no-save-password")
	if noSavePwd {
		ioconfig.SavePassword = false
	}

	if err = ioconfig.SaveConnection(homeDir, conn); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Connection saved to <em>%s</em>",
		config.ConnectionFilePath(homeDir))
	if noSavePwd {
		gn.Info("Password was not saved, future commands will need it again")
	}
	return nil
}

// connectionFromFlags merges the command flags over the saved
// connection. Giving --sqlite switches to the file backend; giving any
// server flag switches to PostgreSQL, pre-filled with the usual server
// defaults.
func connectionFromFlags(cmd *cobra.Command) (config.ConnectionConfig, error) {
	conn := cfg.Connection

	sqlitePath, _ := cmd.Flags().GetString("sqlite")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	database, _ := cmd.Flags().GetString("database")
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")

	pgFlags := host != "" || database != "" || user != "" ||
		password != "" || cmd.Flags().Changed("port")

	switch {
	case sqlitePath != "":
		conn = config.ConnectionConfig{
			Type: config.BackendSQLite,
			Path: sqlitePath,
		}
	case pgFlags:
		if conn.Type != config.BackendPostgres {
			conn = config.DefaultPostgresConnection()
		}
		if host != "" {
			conn.Host = host
		}
		if cmd.Flags().Changed("port") {
			conn.Port = port
		}
		if database != "" {
			conn.Database = database
		}
		if user != "" {
			conn.User = user
		}
		if password != "" {
			conn.Password = password
		}
	}

	return conn, nil
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().String("sqlite", "", "path of the SQLite database file")
	connectCmd.Flags().String("host", "", "PostgreSQL server host")
	connectCmd.Flags().Int("port", 5432, "PostgreSQL server port")
	connectCmd.Flags().String("database", "", "PostgreSQL database name")
	connectCmd.Flags().String("user", "", "PostgreSQL user")
	connectCmd.Flags().String("password", "", "PostgreSQL password")
	connectCmd.Flags().Bool("test", false,
		"test the connection without saving it")
	connectCmd.Flags().Bool("no-save-password", false,
		"do not persist the password in the connection file")
}
