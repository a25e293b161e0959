package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/zooarch/faunadb/internal/ioexport"
)

var exportCmd = &cobra.Command{
	Use:   "export ID",
	Short: "Export a record as a printable observation sheet",
	Long: `Writes one record as a PDF observation sheet, named after its
location (Scheda_FR_<site>_<area>_US<unit>.pdf). If the PDF cannot be
produced, or with --text, a plain-text sheet with the same content is
written instead.`,
	Example: `  faunadb export 7
  faunadb export 7 --out ~/schede --text`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.GetRecord(cmd.Context(), id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if rec == nil {
		err = fmt.Errorf("record %d not found", id)
		gn.Warn("No record with id <em>%d</em>", id)
		return err
	}

	dir, _ := cmd.Flags().GetString("out")
	textOnly, _ := cmd.Flags().GetBool("text")

	path, err := ioexport.WriteRecord(rec, dir, textOnly)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Sheet written to <em>%s</em>", path)
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("out", ".", "output directory")
	exportCmd.Flags().Bool("text", false,
		"write the plain-text sheet instead of PDF")
}
