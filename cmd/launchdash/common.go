package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fabricofdreams/falcon9dash/internal/chart"
	"github.com/fabricofdreams/falcon9dash/internal/config"
	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
	"github.com/fabricofdreams/falcon9dash/internal/log"
	"github.com/fabricofdreams/falcon9dash/internal/store"
)

// loadConfig reads the config file and applies the persistent flags that
// were set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if flags.Changed("data") {
		if cfg.DataPath, err = flags.GetString("data"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("table") {
		if cfg.Table, err = flags.GetString("table"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("verbose") {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("json-logs") {
		if cfg.JSONLogs, err = flags.GetBool("json-logs"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setupLogger builds the masked logger for cfg and installs it as default.
// level applies unless verbose logging is on.
func setupLogger(cfg *config.Config, w io.Writer, level slog.Level) *slog.Logger {
	logger := log.NewLogger(w, log.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.JSONLogs,
		Level:   level,
	})
	slog.SetDefault(logger)
	return logger
}

// openDashboard loads the launch data and builds the dashboard over it.
func openDashboard(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dashboard.Dashboard, error) {
	s, err := store.Open(ctx, cfg.DataPath, store.Options{Table: cfg.Table})
	if err != nil {
		return nil, err
	}
	logger.Debug("launch data loaded",
		"source", s.Source(),
		"records", s.Len(),
		"sites", len(s.DistinctSites()),
	)

	return dashboard.New(s,
		dashboard.WithLogger(logger),
		dashboard.WithSlider(dashboard.Slider{
			Min:   cfg.Slider.Min,
			Max:   cfg.Slider.Max,
			Step:  cfg.Slider.Step,
			Marks: cfg.Slider.Marks,
		}),
	)
}

func newRenderer(cfg *config.Config) *chart.Renderer {
	return chart.NewRenderer(chart.WithSize(cfg.ChartWidth, cfg.ChartHeight))
}
