// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gscholar/internal/cookies"
	"github.com/pdiddy/gscholar/internal/httputil"
	"github.com/pdiddy/gscholar/internal/scholar"
	"github.com/pdiddy/gscholar/internal/store"
	"github.com/pdiddy/gscholar/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 1 * time.Second
)

// addScrapeFlags registers the flags shared by the search and profile
// commands.
func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page-size", 0, "results per page (default 10 for search, 20 for profiles)")
	cmd.Flags().Int("max-pages", 0, "maximum pages to fetch (0 = unbounded)")
	cmd.Flags().Int("max-results", 0, "maximum citations to accumulate (0 = unbounded)")
	cmd.Flags().Int("max-retries", 0, "retry budget per page for transient failures (default 3)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().Duration("delay", 0, "delay between page fetches (default 1s)")
	cmd.Flags().Bool("sort-by-date", false, "order results newest first")
	cmd.Flags().Bool("json", false, "print citations as JSON instead of a table")
	cmd.Flags().String("out", "", "write results to a YAML file")
	cmd.Flags().String("save", "", "upsert results into a SQLite citation database at this path")
}

// scrapeConfig assembles a ScrapeConfig from flags, with config-file and
// environment fallbacks via viper.
func scrapeConfig(cmd *cobra.Command) types.ScrapeConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("inter_page_delay")
	}
	if delay == 0 {
		delay = defaultDelay
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    timeout,
			UserAgent:  viper.GetString("user_agent"),
			CookieFile: cookieFile(),
		},
		PageSize:        pageSize,
		MaxPages:        maxPages,
		MaxResults:      maxResults,
		MaxRetries:      maxRetries,
		InterPageDelay:  delay,
		BlockSignatures: viper.GetStringSlice("block_signatures"),
	}
}

func cookieFile() string {
	if f, _ := rootCmd.PersistentFlags().GetString("cookies"); f != "" {
		return f
	}
	return viper.GetString("cookie_file")
}

// runScrape executes the scrape for q and handles the output wiring.
// A terminal failure is reported after whatever was accumulated has
// been printed and saved; partial results are never discarded.
func runScrape(cmd *cobra.Command, q scholar.Query, label string) error {
	cfg := scrapeConfig(cmd)
	if s, _ := cmd.Flags().GetBool("sort-by-date"); s {
		q.SortBy = scholar.SortByDate
	}
	q.PageSize = cfg.PageSize

	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("creating cookie jar: %w", err)
	}
	if cfg.CookieFile != "" {
		if err := cookies.Load(cfg.CookieFile, jar); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	client := httputil.NewClient(cfg.HTTPConfig, jar)
	citations, scrapeErr := scholar.Scrape(cmd.Context(), client, q, cfg, os.Stderr)

	if cfg.CookieFile != "" {
		if err := cookies.Save(cfg.CookieFile, jar); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if dbPath, _ := cmd.Flags().GetString("save"); dbPath != "" && len(citations) > 0 {
		if err := saveToStore(cmd, dbPath, label, citations); err != nil {
			return err
		}
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := scholar.WriteResultFile(outPath, q, citations, scrapeErr); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", outPath)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := scholar.FormatJSON(citations, os.Stdout); err != nil {
			return err
		}
	} else {
		scholar.FormatTable(citations, os.Stdout)
	}

	if scrapeErr != nil {
		return fmt.Errorf("scrape incomplete (%d citations kept): %w", len(citations), scrapeErr)
	}
	return nil
}

func saveToStore(cmd *cobra.Command, dbPath, label string, citations []types.Citation) error {
	st, err := store.New(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.Save(cmd.Context(), label, citations)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved to %s: %d inserted, %d updated\n", dbPath, summary.Inserted, summary.Updated)
	return nil
}
