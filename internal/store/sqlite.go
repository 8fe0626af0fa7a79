package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// ErrInvalidTable is returned for a table name that is not a plain identifier.
var ErrInvalidTable = errors.New("invalid table name")

// tableNamePattern restricts table names to plain SQL identifiers, since the
// name is interpolated into the query.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteRow is one launch row as scanned from SQLite.
type sqliteRow struct {
	Site    sql.NullString  `db:"site"`
	Payload sql.NullFloat64 `db:"payload_mass_kg"`
	Class   sql.NullFloat64 `db:"outcome_class"`
	Booster sql.NullString  `db:"booster_version_category"`
}

// LoadSQLite reads launch records from table in the SQLite database at path.
// The table must carry the same column names as the CSV source.
// The database is opened read-only.
func LoadSQLite(ctx context.Context, path, table string) ([]model.LaunchRecord, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, &model.DataLoadError{Source: path, Err: fmt.Errorf("%w: %q", ErrInvalidTable, table)}
	}

	db, err := sqlx.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &model.DataLoadError{Source: path, Err: fmt.Errorf("failed to open database: %w", err)}
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	query := fmt.Sprintf(`
	SELECT
		[%s] AS site,
		[%s] AS payload_mass_kg,
		[%s] AS outcome_class,
		[%s] AS booster_version_category
	FROM %s
	ORDER BY rowid`,
		model.ColumnLaunchSite,
		model.ColumnPayloadMass,
		model.ColumnClass,
		model.ColumnBoosterCategory,
		table,
	)

	var rows []sqliteRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		if strings.Contains(err.Error(), "no such column") {
			return nil, &model.DataLoadError{Source: path, Err: fmt.Errorf("%w: %v", model.ErrMissingColumn, err)}
		}
		return nil, &model.DataLoadError{Source: path, Err: fmt.Errorf("failed to query %s: %w", table, err)}
	}

	records := make([]model.LaunchRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			var dle *model.DataLoadError
			if errors.As(err, &dle) {
				dle.Source = path
				dle.Line = i + 1
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// toRecord validates a scanned row the same way LoadCSV validates a CSV row.
func (r sqliteRow) toRecord() (model.LaunchRecord, error) {
	if !r.Site.Valid {
		return model.LaunchRecord{}, &model.DataLoadError{Column: model.ColumnLaunchSite, Err: errors.New("value is NULL")}
	}
	if !r.Payload.Valid {
		return model.LaunchRecord{}, &model.DataLoadError{Column: model.ColumnPayloadMass, Err: errors.New("value is NULL")}
	}
	if r.Payload.Float64 < 0 {
		return model.LaunchRecord{}, &model.DataLoadError{
			Column: model.ColumnPayloadMass,
			Err:    fmt.Errorf("%w: %g", errNegativePayload, r.Payload.Float64),
		}
	}
	if !r.Class.Valid {
		return model.LaunchRecord{}, &model.DataLoadError{Column: model.ColumnClass, Err: errors.New("value is NULL")}
	}
	class, err := classFromFloat(r.Class.Float64)
	if err != nil {
		return model.LaunchRecord{}, &model.DataLoadError{Column: model.ColumnClass, Err: err}
	}

	return model.LaunchRecord{
		Site:                   strings.TrimSpace(r.Site.String),
		PayloadMassKg:          r.Payload.Float64,
		OutcomeClass:           class,
		BoosterVersionCategory: strings.TrimSpace(r.Booster.String),
	}, nil
}
