// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/gscholar/pkg/types"
)

// PageResult is the outcome of extracting one fetched page: the
// citations in document order and whether a next page plausibly exists.
type PageResult struct {
	Citations []types.Citation
	HasNext   bool
}

// Extractor turns one parsed document into a PageResult. Each supported
// page structure (search results, profile listing) implements this
// interface, so markup drift means adding a strategy rather than
// rewriting the pipeline. An extractor reports ErrStructureChanged when
// its entry container is absent; a present container with zero entries
// is an empty PageResult, not an error.
type Extractor interface {
	Name() string
	Extract(doc *goquery.Document, q Query) (PageResult, error)
}

// extractorFor selects the strategy matching the query kind.
func extractorFor(q Query) Extractor {
	if q.IsProfile() {
		return profileExtractor{}
	}
	return searchExtractor{}
}

// ExtractPage parses the document bytes and runs the strategy for the
// query. Extraction is idempotent: identical bytes yield an identical
// citation sequence.
func ExtractPage(body []byte, q Query) (PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PageResult{}, fmt.Errorf("parsing document: %w", err)
	}
	return extractorFor(q).Extract(doc, q)
}

// searchExtractor handles /scholar search result pages: repeating
// div.gs_ri entries inside the #gs_res_ccl container.
type searchExtractor struct{}

func (searchExtractor) Name() string { return "search" }

func (e searchExtractor) Extract(doc *goquery.Document, q Query) (PageResult, error) {
	if doc.Find("#gs_res_ccl").Length() == 0 && doc.Find("div.gs_ri").Length() == 0 {
		return PageResult{}, fmt.Errorf("%s: no result container: %w", e.Name(), ErrStructureChanged)
	}

	var result PageResult
	doc.Find("div.gs_ri").Each(func(_ int, entry *goquery.Selection) {
		c := types.Citation{Source: e.Name()}

		titleSel := entry.Find("h3.gs_rt")
		if anchor := titleSel.Find("a").First(); anchor.Length() > 0 {
			c.Title = normalizeSpace(anchor.Text())
			c.Link, _ = anchor.Attr("href")
			c.CiteID, _ = anchor.Attr("id")
		} else {
			// Citation-only entries have no link; the title is the h3
			// text minus the [CITATION] tag span.
			title := titleSel.Clone()
			title.Find("span").Remove()
			c.Title = normalizeSpace(title.Text())
		}
		if c.Title == "" {
			return
		}

		b := splitByline(entry.Find("div.gs_a").First().Text())
		c.Authors = b.Authors
		c.Venue = b.Venue
		c.Year = b.Year

		entry.Find("div.gs_fl a").Each(func(_ int, a *goquery.Selection) {
			text := normalizeSpace(a.Text())
			if n, ok := parseCitedBy(text); ok {
				c.CitedBy = n
				if href, exists := a.Attr("href"); exists {
					c.ClusterID = queryParam(href, "cites")
				}
			}
		})

		result.Citations = append(result.Citations, c)
	})

	doc.Find("#gs_n a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), "Next") {
			result.HasNext = true
			return false
		}
		return true
	})

	return result, nil
}

// profileExtractor handles /citations profile listing pages: repeating
// tr.gsc_a_tr rows inside the #gsc_a_t table.
type profileExtractor struct{}

func (profileExtractor) Name() string { return "profile" }

func (e profileExtractor) Extract(doc *goquery.Document, q Query) (PageResult, error) {
	if doc.Find("#gsc_a_t").Length() == 0 {
		return PageResult{}, fmt.Errorf("%s: no article table: %w", e.Name(), ErrStructureChanged)
	}

	// The table renders a dedicated marker row past the last article.
	if doc.Find("td.gsc_a_e").Length() > 0 {
		return PageResult{}, nil
	}

	var result PageResult
	rows := doc.Find("tr.gsc_a_tr")
	rows.Each(func(_ int, row *goquery.Selection) {
		c := types.Citation{Source: e.Name()}

		anchor := row.Find("a.gsc_a_at").First()
		c.Title = normalizeSpace(anchor.Text())
		if c.Title == "" {
			return
		}
		if href, exists := anchor.Attr("href"); exists {
			c.Link = absoluteURL(href)
		}

		gray := row.Find("div.gs_gray")
		c.Authors = splitAuthors(gray.Eq(0).Text())
		c.Venue, c.Year = splitVenueYear(gray.Eq(1).Text())

		if y, ok := parseYear(row.Find(".gsc_a_y").First().Text()); ok {
			c.Year = y
		}
		if n, err := strconv.Atoi(normalizeSpace(row.Find(".gsc_a_c a").First().Text())); err == nil {
			c.CitedBy = n
		}

		result.Citations = append(result.Citations, c)
	})

	// Profiles have no next-page control worth trusting; a full page
	// means more entries plausibly exist.
	result.HasNext = rows.Length() >= q.pageSize()

	return result, nil
}

// parseCitedBy reads the count out of a "Cited by N" anchor text.
func parseCitedBy(text string) (int, bool) {
	rest, found := strings.CutPrefix(text, "Cited by ")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, false
	}
	return n, true
}

// queryParam extracts one query parameter from an href, tolerating
// relative URLs. Returns "" when absent or unparsable.
func queryParam(href, key string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}

// absoluteURL resolves a site-relative href against the Scholar origin.
func absoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return baseURL + href
	}
	return href
}

// normalizeSpace collapses runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
