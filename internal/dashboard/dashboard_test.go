package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fabricofdreams/falcon9dash/internal/model"
	"github.com/fabricofdreams/falcon9dash/internal/reactive"
	"github.com/fabricofdreams/falcon9dash/internal/store"
)

func testRecords() []model.LaunchRecord {
	return []model.LaunchRecord{
		{Site: "CCAFS LC-40", PayloadMassKg: 0, OutcomeClass: 0, BoosterVersionCategory: "v1.0"},
		{Site: "CCAFS LC-40", PayloadMassKg: 525, OutcomeClass: 0, BoosterVersionCategory: "v1.0"},
		{Site: "CCAFS LC-40", PayloadMassKg: 677, OutcomeClass: 1, BoosterVersionCategory: "v1.0"},
		{Site: "VAFB SLC-4E", PayloadMassKg: 500, OutcomeClass: 0, BoosterVersionCategory: "v1.1"},
		{Site: "KSC LC-39A", PayloadMassKg: 2490, OutcomeClass: 1, BoosterVersionCategory: "FT"},
		{Site: "KSC LC-39A", PayloadMassKg: 5300, OutcomeClass: 1, BoosterVersionCategory: "FT"},
		{Site: "VAFB SLC-4E", PayloadMassKg: 9600, OutcomeClass: 1, BoosterVersionCategory: "B4"},
	}
}

func newTestDashboard(t *testing.T, opts ...Option) *Dashboard {
	t.Helper()

	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	d, err := New(store.New("test.csv", testRecords()), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("derives payload bounds", func(t *testing.T) {
		t.Parallel()

		d := newTestDashboard(t)
		want := model.PayloadBounds{MinPositive: 500, Max: 9600}
		if diff := cmp.Diff(want, d.Bounds()); diff != "" {
			t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fails fast without positive payloads", func(t *testing.T) {
		t.Parallel()

		s := store.New("zero.csv", []model.LaunchRecord{{Site: "A", PayloadMassKg: 0}})
		if _, err := New(s); !errors.Is(err, model.ErrEmptyRange) {
			t.Errorf("New() error = %v, want ErrEmptyRange", err)
		}
	})

	t.Run("fails fast on an empty store", func(t *testing.T) {
		t.Parallel()

		if _, err := New(store.New("empty.csv", nil)); !errors.Is(err, model.ErrEmptyRange) {
			t.Errorf("New() error = %v, want ErrEmptyRange", err)
		}
	})
}

func TestDashboard_Defaults(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t)
	want := reactive.State{
		Site:    model.AllSites,
		Payload: model.PayloadRange{Low: 500, High: 9600},
	}
	if diff := cmp.Diff(want, d.Defaults()); diff != "" {
		t.Errorf("Defaults() mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_ParseSite(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t)

	tests := []struct {
		name    string
		input   string
		want    model.SiteSelection
		wantErr error
	}{
		{name: "all sites value", input: "ALL", want: model.AllSites},
		{name: "all sites is case insensitive", input: "all", want: model.AllSites},
		{name: "empty selects all sites", input: "", want: model.AllSites},
		{name: "known site", input: "KSC LC-39A", want: "KSC LC-39A"},
		{name: "surrounding spaces are trimmed", input: " VAFB SLC-4E ", want: "VAFB SLC-4E"},
		{name: "unknown site", input: "Boca Chica", wantErr: ErrUnknownSite},
		{name: "site match is exact", input: "ksc lc-39a", wantErr: ErrUnknownSite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := d.ParseSite(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseSite(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSite(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSite(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDashboard_ParseRange(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t)

	tests := []struct {
		name      string
		low, high string
		want      model.PayloadRange
		wantErr   bool
	}{
		{name: "explicit bounds", low: "0", high: "2000", want: model.PayloadRange{Low: 0, High: 2000}},
		{name: "empty bounds take defaults", want: model.PayloadRange{Low: 500, High: 9600}},
		{name: "empty high takes default", low: "1000", want: model.PayloadRange{Low: 1000, High: 9600}},
		{name: "equal bounds", low: "500", high: "500", want: model.PayloadRange{Low: 500, High: 500}},
		{name: "reversed bounds", low: "2000", high: "1000", wantErr: true},
		{name: "negative low", low: "-1", high: "1000", wantErr: true},
		{name: "not a number", low: "heavy", high: "1000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := d.ParseRange(tt.low, tt.high)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidRange) {
					t.Errorf("ParseRange() error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRange() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDashboard_Charts(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t)

	t.Run("all sites pie sums successes per site", func(t *testing.T) {
		t.Parallel()

		want := []model.PieSlice{
			{Label: "CCAFS LC-40", Value: 1},
			{Label: "VAFB SLC-4E", Value: 1},
			{Label: "KSC LC-39A", Value: 2},
		}
		if diff := cmp.Diff(want, d.Pie(model.AllSites).Slices); diff != "" {
			t.Errorf("Pie() slices mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("scatter applies site and payload filters", func(t *testing.T) {
		t.Parallel()

		got := d.Scatter("CCAFS LC-40", model.PayloadRange{Low: 500, High: 600})
		want := []model.ScatterPoint{{X: 525, Y: 0, ColorGroup: "v1.0"}}
		if diff := cmp.Diff(want, got.Points); diff != "" {
			t.Errorf("Scatter() points mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		t.Parallel()

		rng := model.PayloadRange{Low: 0, High: 6000}
		for _, sel := range []model.SiteSelection{model.AllSites, "KSC LC-39A", "VAFB SLC-4E"} {
			if diff := cmp.Diff(d.Pie(sel), d.Pie(sel)); diff != "" {
				t.Errorf("Pie(%q) differs between calls:\n%s", sel, diff)
			}
			if diff := cmp.Diff(d.Scatter(sel, rng), d.Scatter(sel, rng)); diff != "" {
				t.Errorf("Scatter(%q) differs between calls:\n%s", sel, diff)
			}
		}
	})
}

func TestDashboard_Report(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := newTestDashboard(t, WithClock(func() time.Time { return at }))

	r := d.Report(d.Defaults())
	if !r.GeneratedAt.Equal(at) {
		t.Errorf("GeneratedAt = %v, want %v", r.GeneratedAt, at)
	}
	if r.Records != 7 || r.Source != "test.csv" {
		t.Errorf("unexpected header fields: records %d source %q", r.Records, r.Source)
	}
	if len(r.SiteSummaries) != 3 {
		t.Errorf("expected 3 site summaries, got %d", len(r.SiteSummaries))
	}
	// The default range starts at 500, so the zero-payload record is excluded.
	if len(r.Scatter.Points) != 6 {
		t.Errorf("expected 6 scatter points, got %d", len(r.Scatter.Points))
	}
}

func TestDashboard_Layout(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t)
	l := d.Layout()

	if l.Title != "SpaceX Launch Records Dashboard" {
		t.Errorf("Title = %q", l.Title)
	}

	wantOptions := []SelectOption{
		{Label: "All Sites", Value: "ALL"},
		{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
		{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
		{Label: "KSC LC-39A", Value: "KSC LC-39A"},
	}
	if diff := cmp.Diff(wantOptions, l.Dropdown.Options); diff != "" {
		t.Errorf("dropdown options mismatch (-want +got):\n%s", diff)
	}
	if l.Dropdown.Value != "ALL" || l.Dropdown.Placeholder != "Select a Launch Site here" {
		t.Errorf("unexpected dropdown %+v", l.Dropdown)
	}

	if l.Slider.Min != 0 || l.Slider.Max != 10000 || l.Slider.Step != 500 {
		t.Errorf("unexpected slider bounds %+v", l.Slider)
	}
	if l.Slider.Value != [2]float64{500, 9600} {
		t.Errorf("slider value = %v", l.Slider.Value)
	}
	if len(l.Slider.Marks) != 7 || l.Slider.Marks[3].Label != "2000 Kg" {
		t.Errorf("unexpected marks %+v", l.Slider.Marks)
	}
}

func TestSlider_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		slider  Slider
		wantErr bool
	}{
		{name: "default slider is valid", slider: DefaultSlider()},
		{name: "min above max", slider: Slider{Min: 100, Max: 50, Step: 10}, wantErr: true},
		{name: "negative min", slider: Slider{Min: -1, Max: 50, Step: 10}, wantErr: true},
		{name: "zero step", slider: Slider{Min: 0, Max: 50, Step: 0}, wantErr: true},
		{name: "mark outside bounds", slider: Slider{Min: 0, Max: 50, Step: 10, Marks: []float64{60}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.slider.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidSlider) {
				t.Errorf("Validate() error = %v, want ErrInvalidSlider", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestDashboard_Loop(t *testing.T) {
	t.Parallel()

	d := newTestDashboard(t)

	var pies []model.PieSpec
	var scatters []model.ScatterSpec
	loop := d.Loop(Sinks{
		Pie: func(_ context.Context, spec model.PieSpec) error {
			pies = append(pies, spec)
			return nil
		},
		Scatter: func(_ context.Context, spec model.ScatterSpec) error {
			scatters = append(scatters, spec)
			return nil
		},
	})

	ctx := context.Background()
	if err := loop.Submit(ctx, reactive.SiteChanged("KSC LC-39A")); err != nil {
		t.Fatal(err)
	}
	if err := loop.Submit(ctx, reactive.PayloadChanged(model.PayloadRange{Low: 3000, High: 6000})); err != nil {
		t.Fatal(err)
	}
	loop.Close()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(pies) != 2 {
		t.Fatalf("expected 2 pie deliveries, got %d", len(pies))
	}
	if len(scatters) != 3 {
		t.Fatalf("expected 3 scatter deliveries, got %d", len(scatters))
	}
	if pies[1].Title != "Total Success Launches for site KSC LC-39A" {
		t.Errorf("pie title = %q", pies[1].Title)
	}
	last := scatters[2]
	if len(last.Points) != 1 || last.Points[0].X != 5300 {
		t.Errorf("unexpected final scatter points %+v", last.Points)
	}
}
