// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages: the
// configured Scholar client and the backoff primitives the scrape
// session uses between retries.
package httputil

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pdiddy/gscholar/pkg/types"
)

// defaultUserAgent is sent when the config does not override it.
// Scholar serves a degraded, script-hostile page to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/116.0"

// defaultReferer makes requests look like they followed a Google search.
const defaultReferer = "https://www.google.com/"

// NewClient builds the shared cookie-aware HTTP client the scrape
// sessions issue requests through. When jar is nil an in-memory jar is
// created; Scholar sets cookies on the first response and expects them
// back. The client is safe for use by concurrent sessions.
func NewClient(cfg types.HTTPConfig, jar http.CookieJar) *http.Client {
	if jar == nil {
		jar, _ = cookiejar.New(nil)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
		Transport: &headerTransport{
			base:      http.DefaultTransport,
			userAgent: ua,
		},
	}
}

// headerTransport stamps default headers onto every outgoing request
// without mutating client-level configuration owned by the caller.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	if clone.Header.Get("Referer") == "" {
		clone.Header.Set("Referer", defaultReferer)
	}
	return t.base.RoundTrip(clone)
}
