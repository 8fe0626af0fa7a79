package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// DefaultTable is the SQLite table read when no table is configured.
const DefaultTable = "launches"

// MIME types recognised as launch data sources.
const (
	mimeSQLite = "application/vnd.sqlite3"
	mimeText   = "text/plain"
)

// ErrUnsupportedSource is wrapped when the source is neither text nor SQLite.
var ErrUnsupportedSource = errors.New("unsupported data source type")

// Options configures how a source is read.
type Options struct {
	// Table is the SQLite table holding launch records.
	// Ignored for CSV sources. Empty means DefaultTable.
	Table string
}

// Store is the immutable set of launch records.
type Store struct {
	source  string
	records []model.LaunchRecord
	sites   []string
	siteSet map[string]struct{}
}

// New builds a Store over records. The slice is copied so later changes by
// the caller do not leak into the store.
func New(source string, records []model.LaunchRecord) *Store {
	s := &Store{
		source:  source,
		records: make([]model.LaunchRecord, len(records)),
		siteSet: make(map[string]struct{}),
	}
	copy(s.records, records)

	for _, r := range s.records {
		if _, ok := s.siteSet[r.Site]; ok {
			continue
		}
		s.siteSet[r.Site] = struct{}{}
		s.sites = append(s.sites, r.Site)
	}
	return s
}

// Open loads the launch data at path.
// The file content decides the loader: SQLite databases are read with
// LoadSQLite, text files with LoadCSV. Every failure is a *model.DataLoadError.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &model.DataLoadError{Source: path, Err: err}
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, &model.DataLoadError{Source: path, Err: err}
	}

	var records []model.LaunchRecord
	switch {
	case isMIME(mtype, mimeSQLite):
		table := opts.Table
		if table == "" {
			table = DefaultTable
		}
		records, err = LoadSQLite(ctx, path, table)
	case isMIME(mtype, mimeText):
		records, err = loadCSVFile(path)
	default:
		return nil, &model.DataLoadError{
			Source: path,
			Err:    fmt.Errorf("%w: %s", ErrUnsupportedSource, mtype.String()),
		}
	}
	if err != nil {
		return nil, err
	}

	return New(path, records), nil
}

// isMIME reports whether mtype or one of its ancestors is want.
// text/csv descends from text/plain, so a CSV matches mimeText.
func isMIME(mtype *mimetype.MIME, want string) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
	}
	return false
}

// loadCSVFile opens path and parses it as CSV.
func loadCSVFile(path string) ([]model.LaunchRecord, error) {
	f, err := os.Open(path) //nolint:gosec // Data path comes from configuration
	if err != nil {
		return nil, &model.DataLoadError{Source: path, Err: err}
	}
	defer f.Close()

	return LoadCSV(f, path)
}

// Source returns the path the store was loaded from.
func (s *Store) Source() string {
	return s.source
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns every record. The returned slice is shared and must be
// treated as read-only.
func (s *Store) Records() []model.LaunchRecord {
	return s.records
}

// DistinctSites returns the launch sites in first-seen order.
func (s *Store) DistinctSites() []string {
	out := make([]string, len(s.sites))
	copy(out, s.sites)
	return out
}

// HasSite reports whether name is one of the loaded launch sites.
func (s *Store) HasSite(name string) bool {
	_, ok := s.siteSet[name]
	return ok
}

// PayloadBounds scans the records once for the smallest positive payload
// and the largest payload. It fails with model.ErrEmptyRange when no record
// has a positive payload.
func (s *Store) PayloadBounds() (model.PayloadBounds, error) {
	var (
		bounds   model.PayloadBounds
		positive bool
	)
	for i, r := range s.records {
		if i == 0 || r.PayloadMassKg > bounds.Max {
			bounds.Max = r.PayloadMassKg
		}
		if r.PayloadMassKg > 0 && (!positive || r.PayloadMassKg < bounds.MinPositive) {
			bounds.MinPositive = r.PayloadMassKg
			positive = true
		}
	}
	if !positive {
		return model.PayloadBounds{}, fmt.Errorf("%s: %w", s.source, model.ErrEmptyRange)
	}
	return bounds, nil
}
