// Package engine holds the Filter Engine and the Aggregators.
//
// Every function here is pure: it reads a slice of launch records and
// returns a new value without touching shared state. Empty input is never an
// error; it yields an empty result or a chart spec with nothing to draw.
package engine
