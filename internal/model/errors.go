package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDataLoad matches every DataLoadError via errors.Is.
	ErrDataLoad = errors.New("failed to load launch data")

	// ErrEmptyRange is returned when no record has a positive payload mass,
	// so the slider default cannot be derived.
	ErrEmptyRange = errors.New("no launch record with a positive payload mass")

	// ErrInvalidRange is returned for a payload range that breaks 0 <= low <= high.
	ErrInvalidRange = errors.New("invalid payload range")

	// ErrMissingColumn is wrapped by a DataLoadError when a required column is absent.
	ErrMissingColumn = errors.New("required column missing")
)

// DataLoadError describes why the launch data could not be loaded.
// Line and Column are zero when the failure is not tied to a cell.
type DataLoadError struct {
	Source string
	Line   int
	Column string
	Err    error
}

// Error implements error.
func (e *DataLoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("load %s: line %d, column %q: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Source, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDataLoad) true for any DataLoadError.
func (e *DataLoadError) Is(target error) bool {
	return target == ErrDataLoad
}
