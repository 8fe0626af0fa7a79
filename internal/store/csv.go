package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

var (
	errNegativePayload = errors.New("payload mass must be non-negative")
	errInvalidClass    = errors.New("class must be 0 or 1")
)

// LoadCSV parses launch records from CSV.
// The first row is the header; it must contain every column in
// model.RequiredColumns. Other columns are ignored. source names the input
// in error messages.
func LoadCSV(r io.Reader, source string) ([]model.LaunchRecord, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.DataLoadError{Source: source, Line: 1, Err: errors.New("empty file, header row expected")}
		}
		return nil, &model.DataLoadError{Source: source, Line: 1, Err: err}
	}

	idx, err := columnIndex(header)
	if err != nil {
		var dle *model.DataLoadError
		if errors.As(err, &dle) {
			dle.Source = source
		}
		return nil, err
	}

	var records []model.LaunchRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &model.DataLoadError{Source: source, Line: pe.Line, Err: pe.Err}
			}
			return nil, &model.DataLoadError{Source: source, Err: err}
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, idx)
		if err != nil {
			var dle *model.DataLoadError
			if errors.As(err, &dle) {
				dle.Source = source
				dle.Line = line
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// columns holds the position of each required column in a row.
type columns struct {
	site, payload, class, booster int
}

// columnIndex locates the required columns in the header row.
func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	for _, name := range model.RequiredColumns {
		if _, ok := pos[name]; !ok {
			return columns{}, &model.DataLoadError{Line: 1, Column: name, Err: model.ErrMissingColumn}
		}
	}

	return columns{
		site:    pos[model.ColumnLaunchSite],
		payload: pos[model.ColumnPayloadMass],
		class:   pos[model.ColumnClass],
		booster: pos[model.ColumnBoosterCategory],
	}, nil
}

// parseRow converts one data row into a LaunchRecord.
func parseRow(row []string, idx columns) (model.LaunchRecord, error) {
	mass, err := parsePayload(row[idx.payload])
	if err != nil {
		return model.LaunchRecord{}, &model.DataLoadError{Column: model.ColumnPayloadMass, Err: err}
	}

	class, err := parseClass(row[idx.class])
	if err != nil {
		return model.LaunchRecord{}, &model.DataLoadError{Column: model.ColumnClass, Err: err}
	}

	return model.LaunchRecord{
		Site:                   strings.TrimSpace(row[idx.site]),
		PayloadMassKg:          mass,
		OutcomeClass:           class,
		BoosterVersionCategory: strings.TrimSpace(row[idx.booster]),
	}, nil
}

// parsePayload parses a non-negative payload mass.
func parsePayload(raw string) (float64, error) {
	mass, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid payload mass %q: %w", raw, err)
	}
	if mass < 0 {
		return 0, fmt.Errorf("%w: %g", errNegativePayload, mass)
	}
	return mass, nil
}

// parseClass parses an outcome class. Exported data sometimes writes the
// class as a float ("1.0"), which is accepted.
func parseClass(raw string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid class %q: %w", raw, err)
	}
	return classFromFloat(v)
}

// classFromFloat maps 0 and 1 to outcome classes and rejects anything else.
func classFromFloat(v float64) (int, error) {
	switch v {
	case model.OutcomeFailure:
		return model.OutcomeFailure, nil
	case model.OutcomeSuccess:
		return model.OutcomeSuccess, nil
	default:
		return 0, fmt.Errorf("%w: got %g", errInvalidClass, v)
	}
}
