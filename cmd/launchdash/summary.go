package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fabricofdreams/falcon9dash/internal/reactive"
	"github.com/fabricofdreams/falcon9dash/internal/report"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print both charts for one set of inputs",
		Long: `Summary computes the success pie and the payload scatter for a site
selection and payload range, and writes them as a report.

Without --site every site is selected. An omitted --low or --high takes the
smallest positive or the largest payload in the data.

Examples:
  # All sites, full payload range, as tables
  launchdash summary

  # One site and a payload window, as Markdown
  launchdash summary --site "CCAFS LC-40" --low 2000 --high 8000 -f markdown

  # JSON written to a file
  launchdash summary -f json -o out/summary.json`,
		Args: cobra.NoArgs,
		RunE: runSummaryCmd,
	}

	cmd.Flags().StringP("site", "s", "", `Launch site, or "ALL" (default: ALL)`)
	cmd.Flags().String("low", "", "Lower payload bound in kg")
	cmd.Flags().String("high", "", "Upper payload bound in kg")
	cmd.Flags().StringP("format", "f", string(report.FormatText), "Report format: text, markdown or json")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr(), slog.LevelWarn)

	flags := cmd.Flags()
	site, _ := flags.GetString("site")
	low, _ := flags.GetString("low")
	high, _ := flags.GetString("high")
	format, _ := flags.GetString("format")
	outputPath, _ := flags.GetString("output")

	d, err := openDashboard(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	sel, err := d.ParseSite(site)
	if err != nil {
		return err
	}
	rng, err := d.ParseRange(low, high)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		}
		f, err := os.Create(outputPath) //nolint:gosec // path comes from the user
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w, err := report.NewWriter(report.Format(format), out, getVersion())
	if err != nil {
		return err
	}
	if _, err := w.Write(d.Report(reactive.State{Site: sel, Payload: rng})); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outputPath)
	}
	return nil
}
