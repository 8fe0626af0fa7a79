package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can match them
// with errors.Is().
var (
	// ErrNoDataPath is returned when no launch data file is configured.
	ErrNoDataPath = errors.New("no data file specified: use --data or set data in the config file")

	// ErrInvalidTable is returned when the SQLite table name is empty.
	ErrInvalidTable = errors.New("invalid table: must not be empty")

	// ErrInvalidListenAddr is returned when the listen address is not "host:port".
	ErrInvalidListenAddr = errors.New("invalid listen address: must be host:port")

	// ErrInvalidTimeout is returned when a server timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidChartSize is returned when a chart dimension is not positive.
	ErrInvalidChartSize = errors.New("invalid chart size: width and height must be positive")

	// ErrInvalidSlider is returned when the slider bounds are unordered, the
	// step is not positive, or a mark lies outside the bounds.
	ErrInvalidSlider = errors.New("invalid slider: need 0 <= min < max, 0 < step <= max-min and marks within bounds")
)
