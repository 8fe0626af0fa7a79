package reactive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrClosed is returned by Submit once the loop has been closed or
	// has stopped running.
	ErrClosed = errors.New("reactive loop closed")

	// ErrUnknownInput is returned for events naming no known input.
	ErrUnknownInput = errors.New("unknown input")
)

// defaultBuffer is the number of events Submit can queue ahead of Run.
const defaultBuffer = 16

// Loop serializes input events for a set of cells.
type Loop struct {
	state  State
	cells  []Cell
	events chan Event

	// closing is closed by Close; stopped is closed when Run returns.
	closing   chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	logger *slog.Logger
	buffer int
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for recompute tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithBuffer sets how many events may wait for processing.
// Values below 1 are ignored.
func WithBuffer(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.buffer = n
		}
	}
}

// NewLoop returns a loop over cells starting from initial.
// Cells are recomputed in the order given.
func NewLoop(initial State, cells []Cell, opts ...Option) *Loop {
	l := &Loop{
		state:   initial,
		cells:   cells,
		closing: make(chan struct{}),
		stopped: make(chan struct{}),
		buffer:  defaultBuffer,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	l.events = make(chan Event, l.buffer)
	return l
}

// Run computes every cell with the initial state and then handles events
// until Close is called or ctx is done. Events already queued when Close
// is called are still handled. Run returns the first sink error, ctx.Err()
// on cancellation, or nil after Close.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	for _, c := range l.cells {
		if err := l.recompute(ctx, c); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-l.events:
			if err := l.handle(ctx, e); err != nil {
				return err
			}
		case <-l.closing:
			return l.drain(ctx)
		}
	}
}

// Submit queues an event. It blocks while the queue is full.
func (l *Loop) Submit(ctx context.Context, e Event) error {
	select {
	case <-l.closing:
		return ErrClosed
	case <-l.stopped:
		return ErrClosed
	default:
	}

	select {
	case l.events <- e:
		return nil
	case <-l.closing:
		return ErrClosed
	case <-l.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop after the queued events are handled.
// It is safe to call more than once.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.closing)
	})
}

// State returns the current input values. It must only be called from a
// sink, or after Run has returned.
func (l *Loop) State() State {
	return l.state
}

func (l *Loop) drain(ctx context.Context) error {
	for {
		select {
		case e := <-l.events:
			if err := l.handle(ctx, e); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Loop) handle(ctx context.Context, e Event) error {
	next, err := l.state.apply(e)
	if err != nil {
		l.logger.Warn("ignoring event", "error", err)
		return nil
	}
	l.state = next

	l.logger.Debug("input changed",
		"input", e.Input.String(),
		"site", l.state.Site.String(),
		"low", l.state.Payload.Low,
		"high", l.state.Payload.High,
	)

	for _, c := range l.cells {
		if !c.DependsOn(e.Input) {
			continue
		}
		if err := l.recompute(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) recompute(ctx context.Context, c Cell) error {
	if err := c.Recompute(ctx, l.state); err != nil {
		return fmt.Errorf("cell %s: %w", c.Name(), err)
	}
	l.logger.Debug("cell recomputed", "cell", c.Name())
	return nil
}
