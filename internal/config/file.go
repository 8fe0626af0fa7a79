package config

import "time"

// File represents the structure of the launchdash configuration file.
// Every field is optional; unset fields keep the value already in Config.
type File struct {
	Data   string `yaml:"data,omitempty"`
	Table  string `yaml:"table,omitempty"`
	Listen string `yaml:"listen,omitempty"`

	// ShutdownTimeout uses Go duration syntax, e.g. "15s".
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`

	Slider *Slider     `yaml:"slider,omitempty"`
	Chart  *ChartFile  `yaml:"chart,omitempty"`
	Server *ServerFile `yaml:"server,omitempty"`
	Log    *LogFile    `yaml:"log,omitempty"`
}

// ChartFile holds chart image settings.
type ChartFile struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// ServerFile holds HTTP response settings.
type ServerFile struct {
	PrettyHTML *bool `yaml:"pretty_html,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

// LogFile holds logging settings.
type LogFile struct {
	Verbose bool `yaml:"verbose,omitempty"`
	JSON    bool `yaml:"json,omitempty"`
}

// Apply copies every field set in the file onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.Data != "" {
		cfg.DataPath = f.Data
	}
	if f.Table != "" {
		cfg.Table = f.Table
	}
	if f.Listen != "" {
		cfg.ListenAddr = f.Listen
	}
	if f.ShutdownTimeout != "" {
		d, err := time.ParseDuration(f.ShutdownTimeout)
		if err != nil {
			return ErrInvalidTimeout
		}
		cfg.ShutdownTimeout = d
	}
	if f.Slider != nil {
		marks := f.Slider.Marks
		if marks == nil {
			marks = cfg.Slider.Marks
		}
		cfg.Slider = Slider{
			Min:   f.Slider.Min,
			Max:   f.Slider.Max,
			Step:  f.Slider.Step,
			Marks: marks,
		}
	}
	if f.Chart != nil {
		if f.Chart.Width != 0 {
			cfg.ChartWidth = f.Chart.Width
		}
		if f.Chart.Height != 0 {
			cfg.ChartHeight = f.Chart.Height
		}
	}
	if f.Server != nil {
		if f.Server.PrettyHTML != nil {
			cfg.PrettyHTML = *f.Server.PrettyHTML
		}
		if f.Server.Compress != nil {
			cfg.Compress = *f.Server.Compress
		}
	}
	if f.Log != nil {
		cfg.Verbose = cfg.Verbose || f.Log.Verbose
		cfg.JSONLogs = cfg.JSONLogs || f.Log.JSON
	}
	return nil
}
