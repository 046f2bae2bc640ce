// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/gscholar/pkg/types"
)

// Outcome classifies a single page fetch. The classification is the one
// place service-specific anti-scraping heuristics live; everything above
// it sees only these four cases.
type Outcome int

const (
	// OutcomeOK means a usable document body was retrieved.
	OutcomeOK Outcome = iota
	// OutcomeEmpty means a valid response with no content, e.g. a page
	// past the end of the results. A normal termination signal.
	OutcomeEmpty
	// OutcomeBlocked means the response pattern indicates Scholar is
	// refusing automated access.
	OutcomeBlocked
	// OutcomeTransient means a network-level or server-side failure
	// that may succeed on retry.
	OutcomeTransient
)

// FetchResult is the classified outcome of one page fetch.
type FetchResult struct {
	Outcome    Outcome
	Body       []byte
	StatusCode int
	Err        error
}

// defaultBlockSignatures are body substrings of known Scholar block
// interstitials. ScrapeConfig.BlockSignatures overrides the set; the
// exact signals are a heuristic, not a contract.
var defaultBlockSignatures = []string{
	"Please show you&#39;re not a robot",
	"Please show you're not a robot",
	"/sorry/index",
	"unusual traffic from your computer network",
}

// FetchPage performs exactly one GET for the given URL through the
// shared client and classifies the response. It never retries; retry
// policy belongs to the scrape session.
func FetchPage(ctx context.Context, client *http.Client, rawURL string, cfg types.ScrapeConfig) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{Outcome: OutcomeTransient, Err: fmt.Errorf("creating request: %w", err)}
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return FetchResult{Outcome: OutcomeTransient, Err: fmt.Errorf("fetching %s: %w", rawURL, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return FetchResult{Outcome: OutcomeEmpty, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		drain(resp.Body)
		return FetchResult{
			Outcome:    OutcomeBlocked,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %w", resp.StatusCode, ErrBlocked),
		}
	case resp.StatusCode >= 500:
		drain(resp.Body)
		return FetchResult{
			Outcome:    OutcomeTransient,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL),
		}
	case resp.StatusCode != http.StatusOK:
		drain(resp.Body)
		return FetchResult{
			Outcome:    OutcomeTransient,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected HTTP %d from %s", resp.StatusCode, rawURL),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{Outcome: OutcomeTransient, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}

	if sig := matchBlockSignature(body, cfg.BlockSignatures); sig != "" {
		return FetchResult{
			Outcome:    OutcomeBlocked,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("block page signature %q: %w", sig, ErrBlocked),
		}
	}

	return FetchResult{Outcome: OutcomeOK, Body: body, StatusCode: resp.StatusCode}
}

// matchBlockSignature returns the first matching signature, or "".
func matchBlockSignature(body []byte, signatures []string) string {
	if len(signatures) == 0 {
		signatures = defaultBlockSignatures
	}
	for _, sig := range signatures {
		if bytes.Contains(body, []byte(sig)) {
			return sig
		}
	}
	return ""
}

func drain(r io.Reader) {
	io.Copy(io.Discard, r)
}
