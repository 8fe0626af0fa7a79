package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// testdataCSV is the fixture shared by the store tests.
const testdataCSV = "testdata/launches.csv"

// TestOpen tests loading the fixture through source detection.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("loads CSV fixture", func(t *testing.T) {
		t.Parallel()

		s, err := Open(context.Background(), testdataCSV, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 14 {
			t.Errorf("expected 14 records, got %d", s.Len())
		}
		if s.Source() != testdataCSV {
			t.Errorf("expected source %q, got %q", testdataCSV, s.Source())
		}
	})

	t.Run("missing file is a DataLoadError", func(t *testing.T) {
		t.Parallel()

		_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
		if !errors.Is(err, model.ErrDataLoad) {
			t.Fatalf("expected ErrDataLoad, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("binary file is unsupported", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "image.csv")
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
		if err := os.WriteFile(path, png, 0600); err != nil {
			t.Fatal(err)
		}

		_, err := Open(context.Background(), path, Options{})
		if !errors.Is(err, ErrUnsupportedSource) {
			t.Errorf("expected ErrUnsupportedSource, got %v", err)
		}
		if !errors.Is(err, model.ErrDataLoad) {
			t.Errorf("expected ErrDataLoad, got %v", err)
		}
	})
}

// TestStoreDistinctSites tests first-seen ordering of sites.
func TestStoreDistinctSites(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), testdataCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	if diff := cmp.Diff(want, s.DistinctSites()); diff != "" {
		t.Errorf("DistinctSites mismatch (-want +got):\n%s", diff)
	}

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()
		sites := s.DistinctSites()
		sites[0] = "changed"
		if s.DistinctSites()[0] != "CCAFS LC-40" {
			t.Error("expected store sites to be unaffected by caller mutation")
		}
	})

	t.Run("HasSite", func(t *testing.T) {
		t.Parallel()
		if !s.HasSite("KSC LC-39A") {
			t.Error("expected KSC LC-39A to be present")
		}
		if s.HasSite("Boca Chica") {
			t.Error("expected Boca Chica to be absent")
		}
		if s.HasSite(model.AllSites.String()) {
			t.Error("expected the ALL sentinel to not be a site")
		}
	})
}

// TestStorePayloadBounds tests derivation of the slider defaults.
func TestStorePayloadBounds(t *testing.T) {
	t.Parallel()

	t.Run("fixture bounds skip zero payloads", func(t *testing.T) {
		t.Parallel()

		s, err := Open(context.Background(), testdataCSV, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := s.PayloadBounds()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.MinPositive != 500 {
			t.Errorf("expected MinPositive 500, got %g", b.MinPositive)
		}
		if b.Max != 9600 {
			t.Errorf("expected Max 9600, got %g", b.Max)
		}
	})

	t.Run("all zero payloads returns ErrEmptyRange", func(t *testing.T) {
		t.Parallel()

		s := New("zeros", []model.LaunchRecord{
			{Site: "A", PayloadMassKg: 0},
			{Site: "B", PayloadMassKg: 0},
		})
		_, err := s.PayloadBounds()
		if !errors.Is(err, model.ErrEmptyRange) {
			t.Errorf("expected ErrEmptyRange, got %v", err)
		}
	})

	t.Run("empty store returns ErrEmptyRange", func(t *testing.T) {
		t.Parallel()

		_, err := New("empty", nil).PayloadBounds()
		if !errors.Is(err, model.ErrEmptyRange) {
			t.Errorf("expected ErrEmptyRange, got %v", err)
		}
	})
}

// TestNewCopiesRecords tests that the store is isolated from its input slice.
func TestNewCopiesRecords(t *testing.T) {
	t.Parallel()

	in := []model.LaunchRecord{{Site: "A", PayloadMassKg: 100}}
	s := New("mem", in)
	in[0].Site = "changed"

	if s.Records()[0].Site != "A" {
		t.Errorf("expected record to keep site A, got %q", s.Records()[0].Site)
	}
}
