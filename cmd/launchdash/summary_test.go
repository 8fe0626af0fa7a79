package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
	"github.com/fabricofdreams/falcon9dash/internal/model"
	"github.com/fabricofdreams/falcon9dash/internal/report"
)

func TestSummaryCmd(t *testing.T) {
	t.Parallel()

	cfgPath := writeFixture(t)

	t.Run("json report for one site", func(t *testing.T) {
		t.Parallel()

		out, err := runRoot(t, "summary", "-c", cfgPath, "-f", "json", "--site", "KSC LC-39A", "--low", "0", "--high", "3000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got report.JSONReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if got.Report.Selection != "KSC LC-39A" {
			t.Errorf("Selection = %q", got.Report.Selection)
		}
		if diff := cmp.Diff(model.PayloadRange{Low: 0, High: 3000}, got.Report.Range); diff != "" {
			t.Errorf("Range mismatch (-want +got):\n%s", diff)
		}
		wantPoints := []model.ScatterPoint{{X: 2490, Y: 1, ColorGroup: "FT"}}
		if diff := cmp.Diff(wantPoints, got.Report.Scatter.Points); diff != "" {
			t.Errorf("Points mismatch (-want +got):\n%s", diff)
		}
		if got.Report.Records != 7 {
			t.Errorf("Records = %d, want 7", got.Report.Records)
		}
	})

	t.Run("defaults to all sites and the data range", func(t *testing.T) {
		t.Parallel()

		out, err := runRoot(t, "summary", "-c", cfgPath, "-f", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got report.JSONReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatal(err)
		}
		if !got.Report.Selection.IsAll() {
			t.Errorf("Selection = %q, want ALL", got.Report.Selection)
		}
		if diff := cmp.Diff(model.PayloadRange{Low: 500, High: 9600}, got.Report.Range); diff != "" {
			t.Errorf("Range mismatch (-want +got):\n%s", diff)
		}
		if len(got.Report.Pie.Slices) != 3 {
			t.Errorf("len(Pie.Slices) = %d, want 3", len(got.Report.Pie.Slices))
		}
	})

	t.Run("text report names the sites", func(t *testing.T) {
		t.Parallel()

		out, err := runRoot(t, "summary", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, site := range []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"} {
			if !strings.Contains(out, site) {
				t.Errorf("text report missing %q", site)
			}
		}
	})

	t.Run("markdown report to a file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "out", "summary.md")
		if _, err := runRoot(t, "summary", "-c", cfgPath, "-f", "md", "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "mermaid") {
			t.Error("markdown report has no mermaid pie")
		}
	})

	t.Run("unknown site", func(t *testing.T) {
		t.Parallel()

		_, err := runRoot(t, "summary", "-c", cfgPath, "--site", "Boca Chica")
		if !errors.Is(err, dashboard.ErrUnknownSite) {
			t.Errorf("error = %v, want ErrUnknownSite", err)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		t.Parallel()

		_, err := runRoot(t, "summary", "-c", cfgPath, "--low", "5000", "--high", "100")
		if !errors.Is(err, model.ErrInvalidRange) {
			t.Errorf("error = %v, want ErrInvalidRange", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := runRoot(t, "summary", "-c", cfgPath, "-f", "xml")
		if !errors.Is(err, report.ErrUnknownFormat) {
			t.Errorf("error = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("missing data file", func(t *testing.T) {
		t.Parallel()

		_, err := runRoot(t, "summary", "-c", cfgPath, "-d", filepath.Join(t.TempDir(), "missing.csv"))
		var loadErr *model.DataLoadError
		if !errors.As(err, &loadErr) {
			t.Errorf("error = %v, want *model.DataLoadError", err)
		}
	})
}
