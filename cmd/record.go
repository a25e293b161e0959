package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/zooarch/faunadb/pkg/fauna"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Create, inspect and change fauna observation sheets",
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, optionally narrowed by location",
	Long: `Lists fauna records ordered by site, area and stratigraphic unit.
The --site, --area, --us, --specie and --contesto flags narrow the list
by exact match; --unit narrows by the stratigraphic unit identity.`,
	RunE: runRecordList,
}

var recordShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one record in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordShow,
}

var recordNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a record linked to a stratigraphic unit",
	Long: `Creates a fauna record. The --unit flag is required and names the
stratigraphic unit the observation belongs to; the unit's site, area,
US number, trench and dating are stamped onto the record.

Column values come from repeated --set col=value flags, or from a JSON
document given with --json-file ("-" reads stdin).`,
	Example: `  faunadb record new --unit 12 --set specie="Sus scrofa" --set contesto=ABITATIVO
  faunadb record new --unit 12 --json-file sheet.json
  cat sheet.json | faunadb record new --unit 12 --json-file -`,
	RunE: runRecordNew,
}

var recordSetCmd = &cobra.Command{
	Use:   "set ID",
	Short: "Change columns of an existing record",
	Example: `  faunadb record set 7 --set stato_conservazione=4
  faunadb record set 7 --set 'specie_psi=[["Bos taurus","Cranio"]]'`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordSet,
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete ID [ID...]",
	Short: "Delete records by identity",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecordDelete,
}

var recordSearchCmd = &cobra.Command{
	Use:   "search [TERM]",
	Short: "Find records by free-text search",
	Long: `Searches the text columns of every record for the term,
case-insensitively. Without a term all records are returned. The
--fields flag narrows the searched columns.`,
	Example: `  faunadb record search focolare
  faunadb record search "Sus scrofa" --fields specie,osservazioni`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecordSearch,
}

func runRecordList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	filters := fauna.Filters{}
	for flag, col := range map[string]string{
		"site":     fauna.ColSite,
		"area":     fauna.ColArea,
		"us":       fauna.ColUnit,
		"specie":   fauna.ColSpecies,
		"contesto": fauna.ColContext,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			filters[col] = v
		}
	}
	if unitID, _ := cmd.Flags().GetInt64("unit"); unitID > 0 {
		filters[fauna.ColUnitID] = strconv.FormatInt(unitID, 10)
	}

	recs, err := st.ListRecords(cmd.Context(), filters)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return printRecords(cmd, recs)
}

func runRecordShow(cmd *cobra.Command, args []string) error {
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

	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(rec)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Println(string(bs))
	return nil
}

func runRecordNew(cmd *cobra.Command, args []string) error {
	unitID, _ := cmd.Flags().GetInt64("unit")
	if unitID == 0 {
		err := fmt.Errorf("--unit is required")
		gn.Warn("A record must belong to a stratigraphic unit, give <em>--unit ID</em>")
		return err
	}

	rec, err := recordFromInput(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	unit, err := st.GetReferenceUnit(cmd.Context(), unitID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if unit == nil {
		err = fmt.Errorf("stratigraphic unit %d not found", unitID)
		gn.Warn("No stratigraphic unit with id <em>%d</em>", unitID)
		return err
	}

	// The unit's identity fields are stamped on, not user-editable.
	rec[fauna.ColUnitID] = unit.ID
	rec[fauna.ColSite] = unit.Site
	rec[fauna.ColArea] = unit.Area
	rec[fauna.ColUnit] = unit.Unit
	rec[fauna.ColTrench] = unit.Trench
	rec[fauna.ColDating] = unit.Dating

	id, err := st.InsertRecord(cmd.Context(), rec)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Created record <em>%d</em> for %s, area %s, US %s",
		id, unit.Site, unit.Area, unit.Unit)
	return nil
}

func runRecordSet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	rec, err := recordFromInput(cmd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if len(rec) == 0 {
		err = fmt.Errorf("nothing to change")
		gn.Warn("Give at least one <em>--set col=value</em>")
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	ok, err := st.UpdateRecord(cmd.Context(), id, rec)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !ok {
		err = fmt.Errorf("record %d not found", id)
		gn.Warn("No record with id <em>%d</em>", id)
		return err
	}
	gn.Info("Updated record <em>%d</em>", id)
	return nil
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		ids = append(ids, id)
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.DeleteRecords(cmd.Context(), ids)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Deleted <em>%d</em> of %d records", n, len(ids))
	return nil
}

func runRecordSearch(cmd *cobra.Command, args []string) error {
	var term string
	if len(args) > 0 {
		term = args[0]
	}

	var fields []string
	if v, _ := cmd.Flags().GetString("fields"); v != "" {
		for _, f := range strings.Split(v, ",") {
			fields = append(fields, strings.TrimSpace(f))
		}
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.SearchRecords(cmd.Context(), term, fields)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return printRecords(cmd, recs)
}

// printRecords writes either one summary line per record or, with
// --json, the full records as a JSON array.
func printRecords(cmd *cobra.Command, recs []fauna.Record) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := gnfmt.GNjson{Pretty: true}
		bs, err := enc.Encode(recs)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		fmt.Println(string(bs))
		return nil
	}

	for _, rec := range recs {
		species := rec.Str(fauna.ColSpecies)
		if species == "" {
			species = "-"
		}
		fmt.Printf("%6d  %s / area %s / US %s  %s\n",
			rec.ID(), rec.Str(fauna.ColSite), rec.Str(fauna.ColArea),
			rec.Str(fauna.ColUnit), species)
	}
	gn.Info("Found <em>%d</em> records", len(recs))
	return nil
}

// recordFromInput assembles a record from --json-file and --set flags;
// --set wins on conflicts. Unknown columns are rejected up front.
func recordFromInput(cmd *cobra.Command) (fauna.Record, error) {
	rec := fauna.Record{}

	if path, _ := cmd.Flags().GetString("json-file"); path != "" {
		var bs []byte
		var err error
		if path == "-" {
			bs, err = io.ReadAll(os.Stdin)
		} else {
			bs, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, err
		}
		enc := gnfmt.GNjson{}
		if err = enc.Decode(bs, &rec); err != nil {
			return nil, err
		}
	}

	pairs, _ := cmd.Flags().GetStringArray("set")
	for _, pair := range pairs {
		col, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set %q, want col=value", pair)
		}
		rec[strings.TrimSpace(col)] = val
	}

	for col := range rec {
		if !fauna.KnownColumn(col) {
			return nil, fmt.Errorf("unknown column %q", col)
		}
	}
	return rec, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad record id %q", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.AddCommand(recordListCmd, recordShowCmd, recordNewCmd,
		recordSetCmd, recordDeleteCmd, recordSearchCmd)

	recordListCmd.Flags().String("site", "", "narrow by site")
	recordListCmd.Flags().String("area", "", "narrow by area")
	recordListCmd.Flags().String("us", "", "narrow by stratigraphic unit number")
	recordListCmd.Flags().Int64("unit", 0,
		"narrow by stratigraphic unit identity")
	recordListCmd.Flags().String("specie", "", "narrow by species")
	recordListCmd.Flags().String("contesto", "", "narrow by context type")
	recordListCmd.Flags().Bool("json", false, "print full records as JSON")

	recordNewCmd.Flags().Int64("unit", 0,
		"identity of the stratigraphic unit (required)")
	recordNewCmd.Flags().String("json-file", "",
		"JSON document with column values, - for stdin")
	recordNewCmd.Flags().StringArray("set", nil,
		"column value as col=value, repeatable")

	recordSetCmd.Flags().String("json-file", "",
		"JSON document with column values, - for stdin")
	recordSetCmd.Flags().StringArray("set", nil,
		"column value as col=value, repeatable")

	recordSearchCmd.Flags().String("fields", "",
		"comma-separated columns to search")
	recordSearchCmd.Flags().Bool("json", false,
		"print full records as JSON")
}
