// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex exports formatted references (BibTeX, EndNote, RefMan,
// RefWorks) for scraped citations. Scholar renders a citation popup per
// record with one export link per format; this package fetches the
// popup, locates the link, and downloads the reference body.
package bibtex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// citeBase is the Scholar endpoint serving the citation popup. Declared
// as a var so tests can substitute an httptest server.
var citeBase = "https://scholar.google.com/scholar"

// ErrFormatUnavailable means the popup rendered without an export link
// for the requested format.
var ErrFormatUnavailable = errors.New("reference format not offered")

// ReferenceFormat selects the citation export format.
type ReferenceFormat int

const (
	BibTeX ReferenceFormat = iota
	EndNote
	RefMan
	RefWorks
)

// String returns the format label as Scholar renders it.
func (f ReferenceFormat) String() string {
	switch f {
	case BibTeX:
		return "BibTeX"
	case EndNote:
		return "EndNote"
	case RefMan:
		return "RefMan"
	case RefWorks:
		return "RefWorks"
	default:
		return "unknown"
	}
}

// ParseFormat reads a format name, case-insensitively.
func ParseFormat(s string) (ReferenceFormat, error) {
	switch strings.ToLower(s) {
	case "bibtex":
		return BibTeX, nil
	case "endnote":
		return EndNote, nil
	case "refman":
		return RefMan, nil
	case "refworks":
		return RefWorks, nil
	default:
		return BibTeX, fmt.Errorf("unknown reference format %q", s)
	}
}

// CiteURL builds the citation popup URL for a cite id scraped from a
// search result title anchor.
func CiteURL(citeID string) string {
	params := url.Values{
		"hl":     {"en"},
		"q":      {fmt.Sprintf("info:%s:scholar.google.com/", citeID)},
		"output": {"cite"},
		"scirp":  {"0"},
	}
	return citeBase + "?" + params.Encode()
}

// Reference fetches the formatted reference for one cite id: load the
// popup, find the export link for the format, download its body.
func Reference(ctx context.Context, client *http.Client, citeID string, format ReferenceFormat) (string, error) {
	popup, err := get(ctx, client, CiteURL(citeID))
	if err != nil {
		return "", fmt.Errorf("fetching citation popup: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(popup))
	if err != nil {
		return "", fmt.Errorf("parsing citation popup: %w", err)
	}

	link, err := exportLink(doc, format)
	if err != nil {
		return "", err
	}

	body, err := get(ctx, client, link)
	if err != nil {
		return "", fmt.Errorf("downloading %s reference: %w", format, err)
	}
	return body, nil
}

// exportLink locates the per-format anchor inside the #gs_citi block.
func exportLink(doc *goquery.Document, format ReferenceFormat) (string, error) {
	var href string
	doc.Find("#gs_citi a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.TrimSpace(a.Text()) == format.String() {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	if href == "" {
		return "", fmt.Errorf("%s: %w", format, ErrFormatUnavailable)
	}
	return href, nil
}

func get(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
