package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fabricofdreams/falcon9dash/internal/chart"
	"github.com/fabricofdreams/falcon9dash/internal/export"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every chart to image files",
		Long: `Export renders the pie and scatter charts for "All Sites" and for each
launch site, over one payload range, into a directory.

Files are named <chart>-<site>.<format>, e.g. scatter-ksc-lc-39a.png.

Examples:
  # PNG images into ./charts
  launchdash export

  # SVG images for payloads between 1000 and 5000 kg
  launchdash export --format svg --low 1000 --high 5000 --out svg`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().String("format", string(chart.FormatPNG), "Image format: png or svg")
	cmd.Flags().StringP("out", "o", "charts", "Output directory")
	cmd.Flags().String("low", "", "Lower payload bound in kg")
	cmd.Flags().String("high", "", "Upper payload bound in kg")
	cmd.Flags().IntP("concurrency", "j", export.DefaultConcurrency, "Charts rendered at once")

	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr(), slog.LevelWarn)

	flags := cmd.Flags()
	formatName, _ := flags.GetString("format")
	dir, _ := flags.GetString("out")
	low, _ := flags.GetString("low")
	high, _ := flags.GetString("high")
	concurrency, _ := flags.GetInt("concurrency")

	format, err := chart.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := openDashboard(ctx, cfg, logger)
	if err != nil {
		return err
	}
	rng, err := d.ParseRange(low, high)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	e := export.New(d, newRenderer(cfg), dir,
		export.WithLogger(logger),
		export.WithConcurrency(concurrency),
	)
	results, err := e.Export(ctx, export.Jobs(d, rng, format))
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", r.Job.FileName(), r.Err)
			continue
		}
		fmt.Fprintf(out, "wrote %s (%d bytes)\n", r.Path, r.Bytes)
	}

	if failed := export.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d charts failed to export", len(failed), len(results))
	}
	return nil
}
