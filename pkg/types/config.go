// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	// Scholar serves a degraded page to unknown agents, so this should
	// look like a browser.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// CookieFile is an optional path to a JSON cookie file loaded into
	// the client's jar at startup and written back on exit.
	CookieFile string `json:"cookie_file,omitempty" yaml:"cookie_file,omitempty"`
}

// ScrapeConfig holds settings for a scrape session.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of results requested per page (default 10
	// for search queries, 20 for profile listings).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxPages bounds the number of pages fetched in one session.
	// Zero means no page bound.
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// MaxResults bounds the number of citations accumulated in one
	// session. Zero means no result bound.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxRetries is the number of retry attempts after a transient
	// fetch failure before the session fails (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// InterPageDelay is the pause between consecutive page fetches
	// (default 1s). Hammering Scholar gets the client blocked quickly.
	InterPageDelay time.Duration `json:"inter_page_delay" yaml:"inter_page_delay"`

	// BlockSignatures are substrings of a 200 response body that mark
	// it as a block interstitial rather than a results page. When
	// empty, a default signature set is used.
	BlockSignatures []string `json:"block_signatures,omitempty" yaml:"block_signatures,omitempty"`
}

// StoreConfig holds settings for the citation store.
type StoreConfig struct {
	// DBPath is the SQLite database file path (default "citations.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}
