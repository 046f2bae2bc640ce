package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gscholar/internal/scholar"
	"github.com/pdiddy/gscholar/internal/store"
	"github.com/pdiddy/gscholar/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List citations saved in the local database",
	Long: `List prints citations previously saved with --save, ordered by
citation count. Use --title to filter by a title substring.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("db", "citations.db", "path to the citation database")
	listCmd.Flags().String("title", "", "filter by title substring")
	listCmd.Flags().Int("limit", 0, "maximum rows to print (0 = all)")
	listCmd.Flags().Bool("json", false, "print citations as JSON instead of a table")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	title, _ := cmd.Flags().GetString("title")
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := store.New(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer st.Close()

	var citations []types.Citation
	if title != "" {
		citations, err = st.SearchTitle(cmd.Context(), title, limit)
	} else {
		citations, err = st.List(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return scholar.FormatJSON(citations, os.Stdout)
	}
	scholar.FormatTable(citations, os.Stdout)
	return nil
}
