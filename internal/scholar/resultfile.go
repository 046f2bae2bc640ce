// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gscholar/pkg/types"
)

// ResultFile is the on-disk representation of a scrape and its results.
// A scrape can be saved to a file and reloaded later without hitting
// Scholar again.
type ResultFile struct {
	Query     QueryParams      `yaml:"query"`
	Citations []types.Citation `yaml:"citations"`
	Summary   ResultSummary    `yaml:"summary"`
}

// QueryParams stores the query in a serializable form.
type QueryParams struct {
	FreeText         string `yaml:"free_text,omitempty"`
	AuthorID         string `yaml:"author_id,omitempty"`
	CitesID          string `yaml:"cites_id,omitempty"`
	ClusterID        string `yaml:"cluster_id,omitempty"`
	YearFrom         int    `yaml:"year_from,omitempty"`
	YearTo           int    `yaml:"year_to,omitempty"`
	Lang             string `yaml:"lang,omitempty"`
	LangLimit        string `yaml:"lang_limit,omitempty"`
	SortByDate       bool   `yaml:"sort_by_date,omitempty"`
	PageSize         int    `yaml:"page_size,omitempty"`
	ExcludeCitations bool   `yaml:"exclude_citations,omitempty"`
	IncludeSimilar   bool   `yaml:"include_similar,omitempty"`
	SafeSearch       bool   `yaml:"safe_search,omitempty"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	Failure   string    `yaml:"failure,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves the query and its scraped citations to a YAML
// file. A terminal failure, if any, is recorded so a partial result is
// recognizable when reloaded.
func WriteResultFile(path string, q Query, citations []types.Citation, scrapeErr error) error {
	rf := ResultFile{
		Query: QueryParams{
			FreeText:         q.FreeText,
			AuthorID:         q.AuthorID,
			CitesID:          q.CitesID,
			ClusterID:        q.ClusterID,
			YearFrom:         q.YearFrom,
			YearTo:           q.YearTo,
			Lang:             q.Lang,
			LangLimit:        q.LangLimit,
			SortByDate:       q.SortBy == SortByDate,
			PageSize:         q.PageSize,
			ExcludeCitations: q.ExcludeCitations,
			IncludeSimilar:   q.IncludeSimilar,
			SafeSearch:       q.SafeSearch,
		},
		Citations: citations,
		Summary: ResultSummary{
			Total:     len(citations),
			Timestamp: time.Now(),
		},
	}
	if scrapeErr != nil {
		rf.Summary.Failure = scrapeErr.Error()
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

// ToQuery converts stored QueryParams back into a Query.
func (p QueryParams) ToQuery() Query {
	q := Query{
		FreeText:         p.FreeText,
		AuthorID:         p.AuthorID,
		CitesID:          p.CitesID,
		ClusterID:        p.ClusterID,
		YearFrom:         p.YearFrom,
		YearTo:           p.YearTo,
		Lang:             p.Lang,
		LangLimit:        p.LangLimit,
		PageSize:         p.PageSize,
		ExcludeCitations: p.ExcludeCitations,
		IncludeSimilar:   p.IncludeSimilar,
		SafeSearch:       p.SafeSearch,
	}
	if p.SortByDate {
		q.SortBy = SortByDate
	}
	return q
}
