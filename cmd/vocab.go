package cmd

import (
	"fmt"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gnparser"
	"github.com/spf13/cobra"

	"github.com/zooarch/faunadb/pkg/fauna"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect and edit the controlled vocabularies",
	Long: `The data-entry choice lists come from controlled vocabularies kept
in the database. Each value belongs to a field, has a sort order and
can be deactivated instead of deleted so old records keep their
meaning.`,
}

var vocabFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the vocabulary fields",
	RunE:  runVocabFields,
}

var vocabListCmd = &cobra.Command{
	Use:   "list FIELD",
	Short: "List the values of one field",
	Long: `Lists the active values of a field in choice-list order. With
--all inactive values are included, with identity and sort order for
editing.`,
	Args: cobra.ExactArgs(1),
	RunE: runVocabList,
}

var vocabAddCmd = &cobra.Command{
	Use:   "add FIELD VALUE",
	Short: "Add a value to a field",
	Example: `  faunadb vocab add specie "Capreolus capreolus" --order 8
  faunadb vocab add contesto SACELLO --desc "contesto di culto"`,
	Args: cobra.ExactArgs(2),
	RunE: runVocabAdd,
}

var vocabUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a vocabulary value by identity",
	Example: `  faunadb vocab update 42 --active=false
  faunadb vocab update 42 --value "Ovis vel Capra" --order 5`,
	Args: cobra.ExactArgs(1),
	RunE: runVocabUpdate,
}

var vocabDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a vocabulary value by identity",
	Long: `Removes a vocabulary value outright. Prefer deactivating with
'vocab update ID --active=false': existing records keep the value
either way, but a deactivated one stays visible in the editor.`,
	Args: cobra.ExactArgs(1),
	RunE: runVocabDelete,
}

func runVocabFields(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	fields, err := st.ListVocabFields(cmd.Context())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	for _, f := range fields {
		fmt.Println(f)
	}
	return nil
}

func runVocabList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	field := args[0]
	all, _ := cmd.Flags().GetBool("all")

	if !all {
		vals, err := st.ListVocabValues(cmd.Context(), field)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		for _, v := range vals {
			fmt.Println(v)
		}
		return nil
	}

	entries, err := st.ListVocabEntries(cmd.Context(), field)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	for _, e := range entries {
		state := "active"
		if !e.Active {
			state = "inactive"
		}
		fmt.Printf("%6d  %-40s order=%-4d %s  %s\n",
			e.ID, e.Value, e.SortOrder, state, e.Description)
	}
	return nil
}

func runVocabAdd(cmd *cobra.Command, args []string) error {
	field, value := args[0], args[1]
	desc, _ := cmd.Flags().GetString("desc")
	order, _ := cmd.Flags().GetInt("order")

	warnUnparsedSpecies(field, value)

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.AddVocabEntry(cmd.Context(), fauna.VocabEntry{
		Field:       field,
		Value:       value,
		Description: desc,
		SortOrder:   order,
		Active:      true,
	})
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Added <em>%s</em> to %s (id %d)", value, field, id)
	return nil
}

func runVocabUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	// Read-modify-write so unchanged columns survive.
	entry, err := findVocabEntry(cmd, st, id)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("value"); v != "" {
		warnUnparsedSpecies(entry.Field, v)
		entry.Value = v
	}
	if cmd.Flags().Changed("desc") {
		entry.Description, _ = cmd.Flags().GetString("desc")
	}
	if cmd.Flags().Changed("order") {
		entry.SortOrder, _ = cmd.Flags().GetInt("order")
	}
	if cmd.Flags().Changed("active") {
		entry.Active, _ = cmd.Flags().GetBool("active")
	}

	ok, err := st.UpdateVocabEntry(cmd.Context(), *entry)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !ok {
		err = fmt.Errorf("vocabulary entry %d not found", id)
		gn.Warn("No vocabulary entry with id <em>%d</em>", id)
		return err
	}
	gn.Info("Updated vocabulary entry <em>%d</em>", id)
	return nil
}

func runVocabDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	ok, err := st.DeleteVocabEntry(cmd.Context(), id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !ok {
		err = fmt.Errorf("vocabulary entry %d not found", id)
		gn.Warn("No vocabulary entry with id <em>%d</em>", id)
		return err
	}
	gn.Info("Deleted vocabulary entry <em>%d</em>", id)
	return nil
}

// findVocabEntry locates an entry by identity across all fields.
func findVocabEntry(
	cmd *cobra.Command, st fauna.Store, id int64,
) (*fauna.VocabEntry, error) {
	fields, err := st.ListVocabFields(cmd.Context())
	if err != nil {
		gn.PrintErrorMessage(err)
		return nil, err
	}
	for _, field := range fields {
		entries, err := st.ListVocabEntries(cmd.Context(), field)
		if err != nil {
			gn.PrintErrorMessage(err)
			return nil, err
		}
		for _, e := range entries {
			if e.ID == id {
				return &e, nil
			}
		}
	}
	err = fmt.Errorf("vocabulary entry %d not found", id)
	gn.Warn("No vocabulary entry with id <em>%d</em>", id)
	return nil, err
}

// warnUnparsedSpecies checks species values against scientific name
// grammar. Non-parsing values are allowed ("Indeterminato" is in the
// seed list) but flagged.
func warnUnparsedSpecies(field, value string) {
	if field != fauna.ColSpecies {
		return
	}
	prs := gnparser.New(gnparser.NewConfig())
	parsed := prs.ParseName(value)
	if !parsed.Parsed {
		gn.Warn("<em>%s</em> does not look like a scientific name", value)
	}
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabFieldsCmd, vocabListCmd, vocabAddCmd,
		vocabUpdateCmd, vocabDeleteCmd)

	vocabListCmd.Flags().Bool("all", false,
		"include inactive values with identities")

	vocabAddCmd.Flags().String("desc", "", "value description")
	vocabAddCmd.Flags().Int("order", 0, "choice-list sort order")

	vocabUpdateCmd.Flags().String("value", "", "new value text")
	vocabUpdateCmd.Flags().String("desc", "", "new description")
	vocabUpdateCmd.Flags().Int("order", 0, "new sort order")
	vocabUpdateCmd.Flags().Bool("active", true,
		"whether the value appears in choice lists")
}
