// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar implements the Google Scholar scraping pipeline:
// building query and profile URLs, fetching and classifying pages,
// extracting citation records from the markup, and driving pagination
// across result pages until exhaustion, a bound, or a terminal error.
//
// The pipeline issues requests through a caller-owned HTTP client and
// never writes files or mutates client configuration. All Scholar
// markup knowledge lives in the extractor strategies; all anti-scraping
// heuristics live in the fetch classification.
package scholar

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/gscholar/internal/httputil"
	"github.com/pdiddy/gscholar/pkg/types"
)

// sessionState is the pagination driver's position in its state machine.
type sessionState int

const (
	stateFetching sessionState = iota
	stateExtracting
	stateRetrying
	stateDone
	stateFailed
)

// defaultMaxRetries bounds transient-failure retries per page.
const defaultMaxRetries = 3

// session is the ephemeral state of one logical scrape: current offset,
// accumulated citations, and the retry counter. Created by Scrape and
// discarded when the scrape terminates.
type session struct {
	query  Query
	cfg    types.ScrapeConfig
	client *http.Client
	w      io.Writer

	state     sessionState
	offset    int
	pages     int
	attempt   int
	citations []types.Citation
	lastFetch FetchResult
	failure   *ScrapeError
}

// Scrape runs the full paginated scrape for q through the shared
// client. Pages are fetched strictly sequentially; the offset and the
// continue/stop decision depend on each page's outcome. On success the
// accumulated citations are returned with a nil error. On a terminal
// failure the error is a *ScrapeError and the citations accumulated
// before the failure are still returned. Cancellation is checked
// between pages and likewise yields the partial result.
//
// Progress lines are written to w; pass nil to discard them.
func Scrape(ctx context.Context, client *http.Client, q Query, cfg types.ScrapeConfig, w io.Writer) ([]types.Citation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}

	s := &session{
		query:  q,
		cfg:    cfg,
		client: client,
		w:      w,
		state:  stateFetching,
		offset: q.Offset,
	}
	return s.run(ctx)
}

// run executes the state machine until a terminal state.
func (s *session) run(ctx context.Context) ([]types.Citation, error) {
	for {
		switch s.state {
		case stateFetching:
			s.fetch(ctx)
		case stateExtracting:
			s.extract()
		case stateRetrying:
			s.retry(ctx)
		case stateDone:
			return s.citations, nil
		case stateFailed:
			return s.citations, s.failure
		}
	}
}

// fetch issues one page fetch and transitions on its classification.
func (s *session) fetch(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		s.fail(FailureTransient, err)
		return
	}
	if s.cfg.MaxPages > 0 && s.pages >= s.cfg.MaxPages {
		s.state = stateDone
		return
	}
	if s.pages > 0 && s.attempt == 0 && s.cfg.InterPageDelay > 0 {
		if err := httputil.Wait(ctx, s.cfg.InterPageDelay); err != nil {
			s.fail(FailureTransient, err)
			return
		}
	}

	q := s.query
	q.Offset = s.offset
	pageURL, err := BuildURL(q)
	if err != nil {
		// Validate ran before the session started; this is unreachable
		// for sane offsets but kept for safety.
		s.fail(FailureTransient, err)
		return
	}

	res := FetchPage(ctx, s.client, pageURL, s.cfg)
	switch res.Outcome {
	case OutcomeOK:
		s.lastFetch = res
		s.attempt = 0
		s.state = stateExtracting
	case OutcomeEmpty:
		fmt.Fprintf(s.w, "page at offset %d: past end of results\n", s.offset)
		s.state = stateDone
	case OutcomeBlocked:
		s.fail(FailureBlocked, res.Err)
	case OutcomeTransient:
		if s.attempt >= s.maxRetries() {
			s.fail(FailureTransient, res.Err)
			return
		}
		fmt.Fprintf(s.w, "transient failure at offset %d: %v\n", s.offset, res.Err)
		s.state = stateRetrying
	}
}

// retry waits out the backoff for the current attempt, then re-enters
// Fetching. The delay is exponential in the attempt count and the wait
// honors cancellation.
func (s *session) retry(ctx context.Context) {
	delay := httputil.Backoff(s.attempt)
	fmt.Fprintf(s.w, "retrying in %v (attempt %d/%d)\n", delay, s.attempt+1, s.maxRetries())
	if err := httputil.Wait(ctx, delay); err != nil {
		s.fail(FailureTransient, err)
		return
	}
	s.attempt++
	s.state = stateFetching
}

// extract runs the strategy on the fetched body, accumulates citations,
// and decides whether another page is worth fetching.
func (s *session) extract() {
	pr, err := ExtractPage(s.lastFetch.Body, s.query)
	if err != nil {
		s.fail(FailureStructureChanged, err)
		return
	}

	s.pages++

	kept := pr.Citations
	if s.cfg.MaxResults > 0 && len(s.citations)+len(kept) > s.cfg.MaxResults {
		kept = kept[:s.cfg.MaxResults-len(s.citations)]
	}
	s.citations = append(s.citations, kept...)
	fmt.Fprintf(s.w, "page %d: %d citations (total %d)\n", s.pages, len(kept), len(s.citations))

	switch {
	case len(pr.Citations) == 0:
		// A page with zero valid entries is a probable end-of-results
		// signal, not an error.
		s.state = stateDone
	case !pr.HasNext:
		s.state = stateDone
	case s.cfg.MaxResults > 0 && len(s.citations) >= s.cfg.MaxResults:
		s.state = stateDone
	case s.cfg.MaxPages > 0 && s.pages >= s.cfg.MaxPages:
		s.state = stateDone
	default:
		s.offset += s.query.pageSize()
		s.state = stateFetching
	}
}

func (s *session) fail(kind FailureKind, err error) {
	s.failure = &ScrapeError{Kind: kind, Page: s.pages + 1, Err: err}
	s.state = stateFailed
}

func (s *session) maxRetries() int {
	if s.cfg.MaxRetries > 0 {
		return s.cfg.MaxRetries
	}
	return defaultMaxRetries
}
