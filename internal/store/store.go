// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists scraped citations to a SQLite bibliography
// database and answers lookups over it. The scraping pipeline never
// touches the store; the CLI wires scrape output into it on request.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gscholar/pkg/types"
)

// Store manages the citation SQLite database.
type Store struct {
	db *sql.DB
}

// New opens or creates the citation database at cfg.DBPath and creates
// the schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = "citations.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS citations (
			key TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT,
			venue TEXT,
			year INTEGER,
			cited_by INTEGER,
			link TEXT,
			cite_id TEXT,
			cluster_id TEXT,
			source TEXT,
			query TEXT,
			scraped_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_year ON citations(year)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_query ON citations(query)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSummary holds counts from one save run.
type SaveSummary struct {
	Inserted int
	Updated  int
}

// Save upserts citations under the query string that produced them.
// Existing rows are refreshed: Scholar's citation counts move over time
// and re-scraping should advance them.
func (s *Store) Save(ctx context.Context, query string, citations []types.Citation) (SaveSummary, error) {
	var summary SaveSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range citations {
		authors, err := json.Marshal(c.Authors)
		if err != nil {
			return summary, fmt.Errorf("marshaling authors for %q: %w", c.Title, err)
		}

		key := citationKey(c)
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM citations WHERE key = ?`, key,
		).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking %q: %w", c.Title, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO citations
				(key, title, authors, venue, year, cited_by, link, cite_id, cluster_id, source, query, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				title = excluded.title,
				authors = excluded.authors,
				venue = excluded.venue,
				year = excluded.year,
				cited_by = excluded.cited_by,
				link = excluded.link,
				cite_id = excluded.cite_id,
				cluster_id = excluded.cluster_id,
				source = excluded.source,
				query = excluded.query,
				scraped_at = excluded.scraped_at`,
			key, c.Title, string(authors), c.Venue, c.Year, c.CitedBy,
			c.Link, c.CiteID, c.ClusterID, c.Source, query, now,
		)
		if err != nil {
			return summary, fmt.Errorf("saving %q: %w", c.Title, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// List returns stored citations ordered by citation count descending,
// bounded by limit (0 means no bound).
func (s *Store) List(ctx context.Context, limit int) ([]types.Citation, error) {
	q := `SELECT title, authors, venue, year, cited_by, link, cite_id, cluster_id, source
		FROM citations ORDER BY cited_by DESC, title ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, q, args...)
}

// SearchTitle returns stored citations whose title contains the given
// text, case-insensitively.
func (s *Store) SearchTitle(ctx context.Context, text string, limit int) ([]types.Citation, error) {
	q := `SELECT title, authors, venue, year, cited_by, link, cite_id, cluster_id, source
		FROM citations WHERE title LIKE '%' || ? || '%' ORDER BY cited_by DESC`
	args := []any{text}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, q, args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.Citation, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var citations []types.Citation
	for rows.Next() {
		var c types.Citation
		var authors string
		if err := rows.Scan(&c.Title, &authors, &c.Venue, &c.Year, &c.CitedBy,
			&c.Link, &c.CiteID, &c.ClusterID, &c.Source); err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &c.Authors); err != nil {
				return nil, fmt.Errorf("parsing authors for %q: %w", c.Title, err)
			}
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}

// citationKey picks the most stable identifier available for upserts.
func citationKey(c types.Citation) string {
	switch {
	case c.CiteID != "":
		return "cite:" + c.CiteID
	case c.Link != "":
		return "link:" + c.Link
	default:
		return "title:" + c.Title
	}
}
