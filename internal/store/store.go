// Package store persists the three JSON documents the system publishes:
// the raw grouped articles, the trend snapshot, and the weekly summary.
// These files are the contract consumed by the dashboard, so they stay
// plain JSON on disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"nephscope/internal/config"
	"nephscope/internal/core"
	"nephscope/internal/report"
	"nephscope/internal/trends"
)

// Store reads and writes the published documents under one data directory.
type Store struct {
	dataDir      string
	articlesFile string
	trendsFile   string
	summaryFile  string
}

// NewStore creates a store rooted at the configured data directory,
// creating the directory when missing.
func NewStore(cfg config.Output) (*Store, error) {
	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.Directory, err)
	}
	return &Store{
		dataDir:      cfg.Directory,
		articlesFile: cfg.ArticlesFile,
		trendsFile:   cfg.TrendsFile,
		summaryFile:  cfg.SummaryFile,
	}, nil
}

// ArticlesPath returns the path of the grouped articles document.
func (s *Store) ArticlesPath() string { return filepath.Join(s.dataDir, s.articlesFile) }

// TrendsPath returns the path of the trend snapshot document.
func (s *Store) TrendsPath() string { return filepath.Join(s.dataDir, s.trendsFile) }

// SummaryPath returns the path of the weekly summary document.
func (s *Store) SummaryPath() string { return filepath.Join(s.dataDir, s.summaryFile) }

// SaveArticles writes the raw fetch output unchanged.
func (s *Store) SaveArticles(records core.RecordSet) (string, error) {
	return s.ArticlesPath(), writeJSON(s.ArticlesPath(), records)
}

// LoadArticles reads the persisted record set. A missing file yields an
// empty set, so downstream aggregation produces all-zero statistics
// instead of failing.
func (s *Store) LoadArticles() (core.RecordSet, error) {
	data, err := os.ReadFile(s.ArticlesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return core.RecordSet{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.ArticlesPath(), err)
	}

	var records core.RecordSet
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.ArticlesPath(), err)
	}
	if records == nil {
		records = core.RecordSet{}
	}
	return records, nil
}

// SaveTrends writes the trend snapshot document.
func (s *Store) SaveTrends(snap *trends.Snapshot) (string, error) {
	return s.TrendsPath(), writeJSON(s.TrendsPath(), snap)
}

// SaveSummary writes the weekly summary document.
func (s *Store) SaveSummary(doc *report.Document) (string, error) {
	return s.SummaryPath(), writeJSON(s.SummaryPath(), doc)
}

// LoadSummary reads the persisted weekly summary document.
func (s *Store) LoadSummary() (*report.Document, error) {
	data, err := os.ReadFile(s.SummaryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.SummaryPath(), err)
	}
	var doc report.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.SummaryPath(), err)
	}
	return &doc, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
