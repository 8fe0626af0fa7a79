package reactive

import (
	"context"
	"slices"
)

// Sink receives the values recomputed by a cell.
type Sink[T any] interface {
	// Deliver hands over the new value of the named cell. A returned
	// error stops the loop that owns the cell.
	Deliver(ctx context.Context, name string, value T) error
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc[T any] func(ctx context.Context, name string, value T) error

// Deliver calls f.
func (f SinkFunc[T]) Deliver(ctx context.Context, name string, value T) error {
	return f(ctx, name, value)
}

// Cell is a derived value bound to a set of inputs.
// Cells are created with NewCell and driven by a Loop.
type Cell interface {
	// Name identifies the cell in logs and sink deliveries.
	Name() string

	// DependsOn reports whether the cell reads the given input.
	DependsOn(in Input) bool

	// Recompute evaluates the cell against state and delivers the result.
	Recompute(ctx context.Context, state State) error
}

type cell[T any] struct {
	name    string
	inputs  []Input
	compute func(State) T
	sink    Sink[T]
}

// NewCell returns a cell that recomputes with compute whenever one of
// inputs changes and passes the result to sink. compute must be pure.
func NewCell[T any](name string, inputs []Input, compute func(State) T, sink Sink[T]) Cell {
	return &cell[T]{
		name:    name,
		inputs:  slices.Clone(inputs),
		compute: compute,
		sink:    sink,
	}
}

func (c *cell[T]) Name() string {
	return c.name
}

func (c *cell[T]) DependsOn(in Input) bool {
	return slices.Contains(c.inputs, in)
}

func (c *cell[T]) Recompute(ctx context.Context, state State) error {
	return c.sink.Deliver(ctx, c.name, c.compute(state))
}
