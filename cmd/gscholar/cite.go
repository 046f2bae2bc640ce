package main

import (
	"fmt"
	"net/http/cookiejar"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gscholar/internal/bibtex"
	"github.com/pdiddy/gscholar/internal/cookies"
	"github.com/pdiddy/gscholar/internal/httputil"
)

var citeCmd = &cobra.Command{
	Use:   "cite [cite-ids...]",
	Short: "Export formatted references for scraped citations",
	Long: `Cite fetches the formatted reference (BibTeX by default) for one or
more cite ids, as scraped into the cite_id field of search results, and
prints them to stdout.`,
	RunE: runCite,
}

func init() {
	citeCmd.Flags().String("format", "bibtex", "reference format: bibtex, endnote, refman, refworks")
	citeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more cite ids")
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := bibtex.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg := scrapeConfig(cmd)

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

	var failed int
	for _, citeID := range args {
		ref, err := bibtex.Reference(cmd.Context(), client, citeID, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", citeID, err)
			failed++
			continue
		}
		fmt.Println(ref)
	}

	if cfg.CookieFile != "" {
		if err := cookies.Save(cfg.CookieFile, jar); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d reference(s) failed", failed)
	}
	return nil
}
