package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gscholar/internal/scholar"
)

var searchCmd = &cobra.Command{
	Use:   "search [query terms...]",
	Short: "Scrape Scholar search results for a query",
	Long: `Search scrapes the Scholar result pages for a free-text query, a
cited-by listing (--cites), or a version cluster (--cluster), and emits
one citation record per result entry. Pagination continues until the
results run out or a bound is hit.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("cites", "", "list works citing this cluster id")
	searchCmd.Flags().String("cluster", "", "list the versions of this cluster id")
	searchCmd.Flags().Int("year-from", 0, "earliest publication year")
	searchCmd.Flags().Int("year-to", 0, "latest publication year")
	searchCmd.Flags().String("lang", "", "interface language (default en)")
	searchCmd.Flags().String("lang-limit", "", "restrict result language (Scholar lr syntax, e.g. lang_en)")
	searchCmd.Flags().Bool("exclude-citations", false, "drop citation-only entries")
	searchCmd.Flags().Bool("include-similar", false, "disable filtering of near-duplicate results")
	searchCmd.Flags().Bool("safe", false, "enable adult-content filtering")
	addScrapeFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cites, _ := cmd.Flags().GetString("cites")
	cluster, _ := cmd.Flags().GetString("cluster")
	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")
	lang, _ := cmd.Flags().GetString("lang")
	langLimit, _ := cmd.Flags().GetString("lang-limit")
	excludeCitations, _ := cmd.Flags().GetBool("exclude-citations")
	includeSimilar, _ := cmd.Flags().GetBool("include-similar")
	safe, _ := cmd.Flags().GetBool("safe")

	freeText := strings.Join(args, " ")
	if freeText == "" && cites == "" && cluster == "" {
		return fmt.Errorf("provide query terms, --cites, or --cluster")
	}

	q := scholar.Query{
		FreeText:         freeText,
		CitesID:          cites,
		ClusterID:        cluster,
		YearFrom:         yearFrom,
		YearTo:           yearTo,
		Lang:             lang,
		LangLimit:        langLimit,
		ExcludeCitations: excludeCitations,
		IncludeSimilar:   includeSimilar,
		SafeSearch:       safe,
	}

	label := freeText
	if label == "" {
		label = "cites:" + cites + "cluster:" + cluster
	}
	return runScrape(cmd, q, label)
}
