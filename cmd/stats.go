package cmd

import (
	"fmt"
	"os"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/zooarch/faunadb/internal/ioexport"
	"github.com/zooarch/faunadb/internal/iostats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the fauna records",
	Long: `Computes a statistics report over all fauna records: totals,
value distributions, numeric summaries and a per-site breakdown.

The report prints as text by default; --csv and --pdf write it to a
file instead.`,
	Example: `  faunadb stats
  faunadb stats --csv fauna_stats.csv
  faunadb stats --pdf fauna_stats.pdf`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	csvPath, _ := cmd.Flags().GetString("csv")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	toTerminal := csvPath == "" && pdfPath == ""

	rep, err := iostats.Generate(
		cmd.Context(), st, cfg.Stats, !toTerminal,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if toTerminal {
		fmt.Print(iostats.RenderText(rep))
		return nil
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if err = iostats.RenderCSV(rep, f); err != nil {
			f.Close()
			gn.PrintErrorMessage(err)
			return err
		}
		if err = f.Close(); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Statistics written to <em>%s</em>", csvPath)
	}

	if pdfPath != "" {
		if err = ioexport.ReportPDF(rep, pdfPath); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Statistics written to <em>%s</em>", pdfPath)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("csv", "", "write the report as CSV to a file")
	statsCmd.Flags().String("pdf", "", "write the report as PDF to a file")
}
