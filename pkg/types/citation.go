// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the gscholar scraping
// pipeline: the Citation record produced by extraction and the
// configuration blocks consumed by the fetch, scrape, and store stages.
package types

// Citation is one publication record scraped from a Google Scholar page.
// Fields other than Title degrade to their zero values when the markup
// does not carry them; a record with an empty Title is never emitted.
type Citation struct {
	// Title is the publication title. Always non-empty.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in page order. Empty when the byline
	// could not be parsed.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Venue is the journal, conference, or publisher string from the
	// byline. Empty when not recoverable.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Year is the publication year, or 0 when not recoverable.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitedBy is the citation count from the "Cited by N" link, or 0
	// when the marker is absent.
	CitedBy int `json:"cited_by" yaml:"cited_by"`

	// Link is the article link from the title anchor.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// CiteID is the opaque Scholar identifier used to fetch the
	// citation-export popup for this record.
	CiteID string `json:"cite_id,omitempty" yaml:"cite_id,omitempty"`

	// ClusterID groups the versions of one work. Taken from the
	// cited-by link on search pages; empty on profile pages.
	ClusterID string `json:"cluster_id,omitempty" yaml:"cluster_id,omitempty"`

	// Source identifies the page structure the record came from
	// ("search" or "profile").
	Source string `json:"source" yaml:"source"`
}
