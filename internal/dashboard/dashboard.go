package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fabricofdreams/falcon9dash/internal/engine"
	"github.com/fabricofdreams/falcon9dash/internal/model"
	"github.com/fabricofdreams/falcon9dash/internal/reactive"
	"github.com/fabricofdreams/falcon9dash/internal/store"
)

// Cell names, also used as element ids on the page.
const (
	CellPie     = "pie"
	CellScatter = "scatter"
)

// ErrUnknownSite is returned when a site selection names no loaded site.
var ErrUnknownSite = errors.New("unknown launch site")

// Dashboard computes chart specs over a store.
type Dashboard struct {
	store  *store.Store
	bounds model.PayloadBounds
	slider Slider
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithSlider overrides the default slider bounds and marks.
func WithSlider(s Slider) Option {
	return func(d *Dashboard) {
		d.slider = s
	}
}

// WithLogger sets the logger handed to reactive loops.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// New returns a Dashboard over s. The payload bounds are derived here, so
// a store without any positive payload fails with model.ErrEmptyRange.
func New(s *store.Store, opts ...Option) (*Dashboard, error) {
	bounds, err := s.PayloadBounds()
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		store:  s,
		bounds: bounds,
		slider: DefaultSlider(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d, nil
}

// Store returns the underlying record store.
func (d *Dashboard) Store() *store.Store {
	return d.store
}

// Bounds returns the payload extremes of the loaded data.
func (d *Dashboard) Bounds() model.PayloadBounds {
	return d.bounds
}

// Defaults returns the input state of a freshly opened view: every site,
// and the payload range spanning the smallest positive payload to the
// largest one.
func (d *Dashboard) Defaults() reactive.State {
	return reactive.State{
		Site:    model.AllSites,
		Payload: d.bounds.Range(),
	}
}

// Pie computes the success pie for selection.
func (d *Dashboard) Pie(selection model.SiteSelection) model.PieSpec {
	records := engine.FilterBySite(d.store.Records(), selection)
	return engine.PieAggregate(records, selection)
}

// Scatter computes the payload/outcome scatter for selection and rng.
func (d *Dashboard) Scatter(selection model.SiteSelection, rng model.PayloadRange) model.ScatterSpec {
	records := engine.FilterScatter(d.store.Records(), selection, rng)
	return engine.ScatterAggregate(records, selection)
}

// Report takes a snapshot of both charts for the given inputs.
func (d *Dashboard) Report(state reactive.State) *model.DashboardReport {
	return &model.DashboardReport{
		Source:        d.store.Source(),
		GeneratedAt:   d.now(),
		Records:       d.store.Len(),
		Sites:         d.store.DistinctSites(),
		Bounds:        d.bounds,
		Selection:     state.Site,
		Range:         state.Payload,
		Pie:           d.Pie(state.Site),
		Scatter:       d.Scatter(state.Site, state.Payload),
		SiteSummaries: model.NewSiteSummaries(d.store.Records()),
	}
}

// ParseSite validates a raw dropdown value. An empty value, or one equal
// to AllSites ignoring case, selects every site.
func (d *Dashboard) ParseSite(value string) (model.SiteSelection, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, model.AllSites.String()) {
		return model.AllSites, nil
	}
	if !d.store.HasSite(value) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSite, value)
	}
	return model.SiteSelection(value), nil
}

// ParseRange validates raw slider bounds. An empty bound takes the
// default range's value.
func (d *Dashboard) ParseRange(low, high string) (model.PayloadRange, error) {
	def := d.bounds.Range()

	lo, err := parseBound(low, def.Low)
	if err != nil {
		return model.PayloadRange{}, fmt.Errorf("%w: low: %w", model.ErrInvalidRange, err)
	}
	hi, err := parseBound(high, def.High)
	if err != nil {
		return model.PayloadRange{}, fmt.Errorf("%w: high: %w", model.ErrInvalidRange, err)
	}
	return model.NewPayloadRange(lo, hi)
}

func parseBound(s string, fallback float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Cells returns the pie and scatter cells delivering to the given sinks.
func (d *Dashboard) Cells(pie reactive.Sink[model.PieSpec], scatter reactive.Sink[model.ScatterSpec]) []reactive.Cell {
	return []reactive.Cell{
		reactive.NewCell(CellPie,
			[]reactive.Input{reactive.InputSite},
			func(s reactive.State) model.PieSpec {
				return d.Pie(s.Site)
			},
			pie,
		),
		reactive.NewCell(CellScatter,
			[]reactive.Input{reactive.InputSite, reactive.InputPayload},
			func(s reactive.State) model.ScatterSpec {
				return d.Scatter(s.Site, s.Payload)
			},
			scatter,
		),
	}
}

// NewLoop returns a reactive loop for one view, starting from Defaults.
func (d *Dashboard) NewLoop(pie reactive.Sink[model.PieSpec], scatter reactive.Sink[model.ScatterSpec], opts ...reactive.Option) *reactive.Loop {
	opts = append([]reactive.Option{reactive.WithLogger(d.logger)}, opts...)
	return reactive.NewLoop(d.Defaults(), d.Cells(pie, scatter), opts...)
}

// Sinks is a convenience pair of sinks for callers that handle both cells
// the same way.
type Sinks struct {
	Pie     func(ctx context.Context, spec model.PieSpec) error
	Scatter func(ctx context.Context, spec model.ScatterSpec) error
}

// Loop is NewLoop with plain function sinks.
func (d *Dashboard) Loop(s Sinks, opts ...reactive.Option) *reactive.Loop {
	pie := reactive.SinkFunc[model.PieSpec](func(ctx context.Context, _ string, spec model.PieSpec) error {
		return s.Pie(ctx, spec)
	})
	scatter := reactive.SinkFunc[model.ScatterSpec](func(ctx context.Context, _ string, spec model.ScatterSpec) error {
		return s.Scatter(ctx, spec)
	})
	return d.NewLoop(pie, scatter, opts...)
}
