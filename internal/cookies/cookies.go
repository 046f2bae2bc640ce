// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cookies persists the Scholar cookie jar across runs. Scholar
// hands out session cookies (GSP, NID) on the first response and rates
// cookieless traffic much more aggressively, so reusing a warmed jar
// noticeably lowers the block rate.
package cookies

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// scholarOrigin is the URL cookies are associated with in the jar.
var scholarOrigin = mustParse("https://scholar.google.com/")

// fileCookie is the on-disk representation of one cookie.
type fileCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain,omitempty"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// Load reads a JSON cookie file and installs its cookies into jar for
// the Scholar origin. A missing file is not an error; the jar starts
// empty and Save creates the file later.
func Load(path string, jar http.CookieJar) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cookie file %s: %w", path, err)
	}

	var stored []fileCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("parsing cookie file %s: %w", path, err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	jar.SetCookies(scholarOrigin, cookies)
	return nil
}

// Save writes the jar's Scholar cookies back to path.
func Save(path string, jar http.CookieJar) error {
	current := jar.Cookies(scholarOrigin)
	stored := make([]fileCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, fileCookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cookies: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing cookie file %s: %w", path, err)
	}
	return nil
}

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}
