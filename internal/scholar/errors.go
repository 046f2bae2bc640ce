// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scraping pipeline. Callers classify failures
// with errors.Is rather than string matching.
var (
	// ErrInvalidQuery marks a caller error: the query identifies nothing
	// to search, or carries a negative offset or page size. Never retried.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrBlocked marks a response pattern indicating Scholar is refusing
	// automated access. Terminal by policy: retrying a block worsens it.
	ErrBlocked = errors.New("blocked by scholar")

	// ErrStructureChanged marks a page whose expected entry container is
	// absent. Distinct from a page with zero entries: it usually means
	// the scraper needs updating, not that results are exhausted.
	ErrStructureChanged = errors.New("page structure changed")
)

// FailureKind identifies the terminal failure class of a scrape session.
type FailureKind int

const (
	FailureBlocked FailureKind = iota
	FailureStructureChanged
	FailureTransient
)

// String returns the failure kind name.
func (k FailureKind) String() string {
	switch k {
	case FailureBlocked:
		return "blocked"
	case FailureStructureChanged:
		return "structure_changed"
	case FailureTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// ScrapeError is the typed terminal failure of a scrape session. The
// citations accumulated before the failure are returned alongside it;
// a partial result is never silently discarded.
type ScrapeError struct {
	Kind FailureKind
	Page int
	Err  error
}

// Error implements the error interface.
func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scrape failed (%s) on page %d: %v", e.Kind, e.Page, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *ScrapeError) Unwrap() error {
	return e.Err
}
