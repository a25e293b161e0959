package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Browse the stratigraphic units of the host application",
	Long: `Stratigraphic units belong to the recording application; faunadb
reads them to link fauna records to their excavation context and never
changes them.`,
}

var unitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List units, optionally narrowed by site",
	RunE:  runUnitList,
}

var unitSitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the distinct site names",
	RunE:  runUnitSites,
}

func runUnitList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	site, _ := cmd.Flags().GetString("site")
	units, err := st.ListReferenceUnits(cmd.Context(), site)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	for _, u := range units {
		dating := u.Dating
		if dating == "" {
			dating = "-"
		}
		fmt.Printf("%6d  %s / area %s / US %s  saggio %s  %s\n",
			u.ID, u.Site, u.Area, u.Unit, u.Trench, dating)
	}
	gn.Info("Found <em>%d</em> stratigraphic units", len(units))
	return nil
}

func runUnitSites(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	sites, err := st.ListDistinct(cmd.Context(), "sito", nil)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	for _, s := range sites {
		fmt.Println(s)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(unitCmd)
	unitCmd.AddCommand(unitListCmd, unitSitesCmd)

	unitListCmd.Flags().String("site", "", "narrow by site")
}
