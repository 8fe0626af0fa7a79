package reactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// recorder collects every delivery in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testCells builds a site-only cell and a site+payload cell that record
// the state they were computed with.
func testCells(rec *recorder) []Cell {
	siteCell := NewCell("pie", []Input{InputSite},
		func(s State) string { return s.Site.String() },
		SinkFunc[string](func(_ context.Context, name string, v string) error {
			rec.add(name + ":" + v)
			return nil
		}),
	)
	bothCell := NewCell("scatter", []Input{InputSite, InputPayload},
		func(s State) string {
			return fmt.Sprintf("%s[%g,%g]", s.Site, s.Payload.Low, s.Payload.High)
		},
		SinkFunc[string](func(_ context.Context, name string, v string) error {
			rec.add(name + ":" + v)
			return nil
		}),
	)
	return []Cell{siteCell, bothCell}
}

func initialState() State {
	return State{Site: model.AllSites, Payload: model.PayloadRange{Low: 500, High: 9600}}
}

// TestLoopRun tests initial computation, event ordering and recompute sets.
func TestLoopRun(t *testing.T) {
	t.Parallel()

	t.Run("computes every cell once before any event", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()))
		loop.Close()

		if err := loop.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := []string{"pie:ALL", "scatter:ALL[500,9600]"}
		if diff := cmp.Diff(want, rec.snapshot()); diff != "" {
			t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("payload change recomputes only the scatter cell", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()))
		ctx := context.Background()

		if err := loop.Submit(ctx, PayloadChanged(model.PayloadRange{Low: 0, High: 2000})); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		loop.Close()
		if err := loop.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := []string{
			"pie:ALL", "scatter:ALL[500,9600]",
			"scatter:ALL[0,2000]",
		}
		if diff := cmp.Diff(want, rec.snapshot()); diff != "" {
			t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("site change recomputes both cells once each", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()))
		ctx := context.Background()

		if err := loop.Submit(ctx, SiteChanged("KSC LC-39A")); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		loop.Close()
		if err := loop.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := []string{
			"pie:ALL", "scatter:ALL[500,9600]",
			"pie:KSC LC-39A", "scatter:KSC LC-39A[500,9600]",
		}
		if diff := cmp.Diff(want, rec.snapshot()); diff != "" {
			t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
		}
		if got := loop.State().Site; got != "KSC LC-39A" {
			t.Errorf("State().Site = %q", got)
		}
	})

	t.Run("events are handled in arrival order", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()))
		ctx := context.Background()

		events := []Event{
			SiteChanged("A"),
			PayloadChanged(model.PayloadRange{Low: 1000, High: 2000}),
			SiteChanged("B"),
			PayloadChanged(model.PayloadRange{Low: 0, High: 0}),
		}
		for _, e := range events {
			if err := loop.Submit(ctx, e); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
		}
		loop.Close()
		if err := loop.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := []string{
			"pie:ALL", "scatter:ALL[500,9600]",
			"pie:A", "scatter:A[500,9600]",
			"scatter:A[1000,2000]",
			"pie:B", "scatter:B[1000,2000]",
			"scatter:B[0,0]",
		}
		if diff := cmp.Diff(want, rec.snapshot()); diff != "" {
			t.Errorf("deliveries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("events submitted while running are handled", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()), WithBuffer(1))
		ctx := context.Background()

		errCh := make(chan error, 1)
		go func() { errCh <- loop.Run(ctx) }()

		for i := range 5 {
			rng := model.PayloadRange{Low: 0, High: float64(i * 500)}
			if err := loop.Submit(ctx, PayloadChanged(rng)); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
		}
		loop.Close()

		select {
		case err := <-errCh:
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("loop did not stop")
		}

		got := rec.snapshot()
		if len(got) != 2+5 {
			t.Fatalf("expected 7 deliveries, got %d: %v", len(got), got)
		}
		if got[len(got)-1] != "scatter:ALL[0,2000]" {
			t.Errorf("last delivery = %q", got[len(got)-1])
		}
	})
}

// TestLoopSinkError tests that a failing sink stops the loop.
func TestLoopSinkError(t *testing.T) {
	t.Parallel()

	errSink := errors.New("client gone")
	calls := 0
	failing := NewCell("pie", []Input{InputSite},
		func(s State) string { return s.Site.String() },
		SinkFunc[string](func(context.Context, string, string) error {
			calls++
			if calls == 2 {
				return errSink
			}
			return nil
		}),
	)

	loop := NewLoop(initialState(), []Cell{failing}, WithLogger(discardLogger()))
	ctx := context.Background()
	for _, site := range []model.SiteSelection{"A", "B", "C"} {
		if err := loop.Submit(ctx, SiteChanged(site)); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	err := loop.Run(ctx)
	if !errors.Is(err, errSink) {
		t.Fatalf("Run() error = %v, want %v", err, errSink)
	}
	if calls != 2 {
		t.Errorf("sink called %d times after failure, expected 2", calls)
	}
	if err := loop.Submit(ctx, SiteChanged("D")); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after stop error = %v, want ErrClosed", err)
	}
}

// TestLoopCancel tests that a cancelled context ends Run.
func TestLoopCancel(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()))
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

// TestLoopUnknownInput tests that malformed events are skipped.
func TestLoopUnknownInput(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	loop := NewLoop(initialState(), testCells(rec), WithLogger(discardLogger()))
	ctx := context.Background()

	if err := loop.Submit(ctx, Event{Input: Input(42)}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	loop.Close()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := len(rec.snapshot()); got != 2 {
		t.Errorf("expected only the initial 2 deliveries, got %d", got)
	}
}

// TestSubmitAfterClose tests that a closed loop rejects events.
func TestSubmitAfterClose(t *testing.T) {
	t.Parallel()

	loop := NewLoop(initialState(), nil, WithLogger(discardLogger()))
	loop.Close()
	loop.Close()

	if err := loop.Submit(context.Background(), SiteChanged("A")); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() error = %v, want ErrClosed", err)
	}
}

// TestParseInput tests the wire names of inputs.
func TestParseInput(t *testing.T) {
	t.Parallel()

	for _, in := range []Input{InputSite, InputPayload} {
		got, err := ParseInput(in.String())
		if err != nil || got != in {
			t.Errorf("ParseInput(%q) = %v, %v", in.String(), got, err)
		}
	}
	if _, err := ParseInput("booster"); !errors.Is(err, ErrUnknownInput) {
		t.Errorf("ParseInput(booster) error = %v, want ErrUnknownInput", err)
	}
}
