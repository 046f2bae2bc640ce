// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cookies

import (
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newJar(t *testing.T) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	return jar
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	jar := newJar(t)
	jar.SetCookies(scholarOrigin, []*http.Cookie{
		{Name: "GSP", Value: "ID=abc123", Path: "/", Expires: time.Now().Add(24 * time.Hour)},
		{Name: "NID", Value: "xyz", Path: "/", Expires: time.Now().Add(24 * time.Hour)},
	})

	if err := Save(path, jar); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := newJar(t)
	if err := Load(path, restored); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := restored.Cookies(scholarOrigin)
	if len(got) != 2 {
		t.Fatalf("len(cookies) = %d, want 2", len(got))
	}
	byName := map[string]string{}
	for _, c := range got {
		byName[c.Name] = c.Value
	}
	if byName["GSP"] != "ID=abc123" {
		t.Errorf("GSP = %q", byName["GSP"])
	}
	if byName["NID"] != "xyz" {
		t.Errorf("NID = %q", byName["NID"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	jar := newJar(t)
	if err := Load(filepath.Join(t.TempDir(), "absent.json"), jar); err != nil {
		t.Fatalf("Load of a missing file should be a no-op, got: %v", err)
	}
	if n := len(jar.Cookies(scholarOrigin)); n != 0 {
		t.Errorf("jar has %d cookies, want 0", n)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Load(path, newJar(t)); err == nil {
		t.Fatal("expected error for corrupt cookie file")
	}
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	if err := Save(path, newJar(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}
