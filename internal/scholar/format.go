// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/gscholar/pkg/types"
)

// FormatTable writes citations as a human-readable table to w.
func FormatTable(citations []types.Citation, w io.Writer) {
	if len(citations) == 0 {
		fmt.Fprintln(w, "No citations found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s  %-4s  %s\n",
		"Rank", "Title", "Authors", "Year", "Cited")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, c := range citations {
		title := c.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		year := ""
		if c.Year > 0 {
			year = fmt.Sprintf("%d", c.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %-4s  %d\n",
			i+1, title, formatAuthors(c.Authors), year, c.CitedBy)
	}

	fmt.Fprintf(w, "\n%d citations\n", len(citations))
}

// FormatJSON writes citations as indented JSON to w.
func FormatJSON(citations []types.Citation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(citations)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
