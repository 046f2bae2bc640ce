// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"net/url"
	"strconv"
)

// baseURL is the Scholar origin. Declared as a var so tests can
// substitute an httptest server.
var baseURL = "https://scholar.google.com"

// SortMode selects the result ordering Scholar is asked for.
type SortMode int

const (
	// SortByRelevance is Scholar's default ranking.
	SortByRelevance SortMode = iota
	// SortByDate asks for newest-first ordering.
	SortByDate
)

// Query holds the parameters of one logical scrape. A Query is a value;
// BuildURL is a pure function of it.
type Query struct {
	// FreeText is the full-text search string.
	FreeText string

	// AuthorID is a Scholar profile identifier. When set, the query
	// targets the profile publication listing instead of search.
	AuthorID string

	// CitesID restricts a search to works citing the given cluster.
	CitesID string

	// ClusterID restricts a search to the versions of one work.
	ClusterID string

	// YearFrom and YearTo bound the publication year (0 = unbounded).
	YearFrom int
	YearTo   int

	// Lang is the interface language (default "en").
	Lang string

	// LangLimit restricts results to one document language, in
	// Scholar's lr syntax (e.g. "lang_en").
	LangLimit string

	// SortBy selects relevance or date ordering.
	SortBy SortMode

	// PageSize is the number of entries requested per page. Zero means
	// the service default (10 for search, 20 for profiles).
	PageSize int

	// Offset is the zero-based index of the first entry to return.
	Offset int

	// ExcludeCitations drops citation-only entries from search results.
	ExcludeCitations bool

	// SafeSearch enables Scholar's adult-content filtering.
	SafeSearch bool

	// IncludeSimilar disables Scholar's filtering of near-duplicate
	// results.
	IncludeSimilar bool
}

// IsProfile reports whether the query targets a profile listing.
func (q Query) IsProfile() bool {
	return q.AuthorID != ""
}

// Validate checks that the query identifies something to retrieve and
// that its pagination fields are sane.
func (q Query) Validate() error {
	if q.FreeText == "" && q.AuthorID == "" && q.CitesID == "" && q.ClusterID == "" {
		return fmt.Errorf("no author id, free text, cites id, or cluster id: %w", ErrInvalidQuery)
	}
	if q.Offset < 0 {
		return fmt.Errorf("negative offset %d: %w", q.Offset, ErrInvalidQuery)
	}
	if q.PageSize < 0 {
		return fmt.Errorf("negative page size %d: %w", q.PageSize, ErrInvalidQuery)
	}
	return nil
}

// pageSize returns the effective page size for the query.
func (q Query) pageSize() int {
	if q.PageSize > 0 {
		return q.PageSize
	}
	if q.IsProfile() {
		return 20
	}
	return 10
}

// BuildURL renders the query as a Scholar URL. It is deterministic:
// identical queries produce byte-identical URLs.
func BuildURL(q Query) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}
	if q.IsProfile() {
		return buildProfileURL(q), nil
	}
	return buildSearchURL(q), nil
}

// buildSearchURL renders a /scholar search URL. Parameter names follow
// the service's reverse-engineered query string; url.Values.Encode
// keeps them in sorted order.
func buildSearchURL(q Query) string {
	params := url.Values{
		"hl":     {lang(q)},
		"as_sdt": {"0,5"},
		"btnG":   {""},
	}
	if q.FreeText != "" {
		params.Set("q", q.FreeText)
	}
	if q.CitesID != "" {
		params.Set("cites", q.CitesID)
	}
	if q.ClusterID != "" {
		params.Set("cluster", q.ClusterID)
	}
	if q.YearFrom > 0 {
		params.Set("as_ylo", strconv.Itoa(q.YearFrom))
	}
	if q.YearTo > 0 {
		params.Set("as_yhi", strconv.Itoa(q.YearTo))
	}
	if q.LangLimit != "" {
		params.Set("lr", q.LangLimit)
	}
	if q.PageSize > 0 {
		params.Set("num", strconv.Itoa(q.PageSize))
	}
	if q.Offset > 0 {
		params.Set("start", strconv.Itoa(q.Offset))
	}
	if q.SortBy == SortByDate {
		params.Set("scisbd", "1")
	}
	if q.ExcludeCitations {
		params.Set("as_vis", "1")
	}
	if q.IncludeSimilar {
		params.Set("filter", "0")
	}
	if q.SafeSearch {
		params.Set("safe", "active")
	}
	return baseURL + "/scholar?" + params.Encode()
}

// buildProfileURL renders a /citations profile listing URL.
func buildProfileURL(q Query) string {
	params := url.Values{
		"user":     {q.AuthorID},
		"hl":       {lang(q)},
		"cstart":   {strconv.Itoa(q.Offset)},
		"pagesize": {strconv.Itoa(q.pageSize())},
	}
	if q.SortBy == SortByDate {
		params.Set("sortby", "pubdate")
	}
	return baseURL + "/citations?" + params.Encode()
}

func lang(q Query) string {
	if q.Lang != "" {
		return q.Lang
	}
	return "en"
}
