package config

import (
	"net"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "launchdash"

	// DefaultDataPath is the launch data file read when none is configured.
	DefaultDataPath = "spacex_launch_dash.csv"

	// DefaultTable is the SQLite table holding launch records.
	DefaultTable = "launches"

	// DefaultListenAddr is the dashboard server address. 8050 is the port
	// the dashboard has always been served on.
	DefaultListenAddr = "127.0.0.1:8050"

	// DefaultShutdownTimeout bounds how long in-flight requests may take
	// once the server is asked to stop.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultReadHeaderTimeout guards against slow clients.
	DefaultReadHeaderTimeout = 5 * time.Second

	// Default chart image size in pixels.
	DefaultChartWidth  = 800
	DefaultChartHeight = 500

	// Default payload slider bounds in kilograms.
	DefaultSliderMin  = 0
	DefaultSliderMax  = 10000
	DefaultSliderStep = 500
)

// DefaultSliderMarks are the labelled slider ticks.
func DefaultSliderMarks() []float64 {
	return []float64{0, 500, 1000, 2000, 5000, 7000, 10000}
}

// Slider holds the payload range slider settings.
type Slider struct {
	Min   float64   `yaml:"min"`
	Max   float64   `yaml:"max"`
	Step  float64   `yaml:"step"`
	Marks []float64 `yaml:"marks,omitempty"`
}

// Config holds all configuration options for launchdash.
// It is populated from defaults, then the config file, then CLI flags,
// and passed down explicitly.
type Config struct {
	// DataPath is the CSV or SQLite file holding the launch records.
	DataPath string

	// Table is the SQLite table to read. Ignored for CSV data.
	Table string

	// ListenAddr is the "host:port" the dashboard server binds to.
	ListenAddr string

	// ReadHeaderTimeout is the server's limit for reading request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout is how long the server waits for in-flight requests
	// when stopping.
	ShutdownTimeout time.Duration

	// Slider configures the payload range control.
	Slider Slider

	// ChartWidth and ChartHeight size the PNG and SVG chart images.
	ChartWidth  int
	ChartHeight int

	// PrettyHTML indents the served page markup.
	PrettyHTML bool

	// Compress enables brotli response compression for clients that accept it.
	Compress bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// JSONLogs switches the log output to JSON lines.
	JSONLogs bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DataPath:          DefaultDataPath,
		Table:             DefaultTable,
		ListenAddr:        DefaultListenAddr,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		Slider: Slider{
			Min:   DefaultSliderMin,
			Max:   DefaultSliderMax,
			Step:  DefaultSliderStep,
			Marks: DefaultSliderMarks(),
		},
		ChartWidth:  DefaultChartWidth,
		ChartHeight: DefaultChartHeight,
		Compress:    true,
	}
}

// XDGConfigDir returns the XDG config directory for launchdash.
// On Linux: ~/.config/launchdash
// On macOS: ~/Library/Application Support/launchdash
// On Windows: %APPDATA%\launchdash
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return ErrNoDataPath
	}

	if c.Table == "" {
		return ErrInvalidTable
	}

	if _, port, err := net.SplitHostPort(c.ListenAddr); err != nil || port == "" {
		return ErrInvalidListenAddr
	}

	if c.ShutdownTimeout <= 0 || c.ReadHeaderTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return ErrInvalidChartSize
	}

	return c.Slider.validate()
}

func (s Slider) validate() error {
	if s.Min < 0 || s.Min >= s.Max {
		return ErrInvalidSlider
	}
	if s.Step <= 0 || s.Step > s.Max-s.Min {
		return ErrInvalidSlider
	}
	for _, m := range s.Marks {
		if m < s.Min || m > s.Max {
			return ErrInvalidSlider
		}
	}
	return nil
}
