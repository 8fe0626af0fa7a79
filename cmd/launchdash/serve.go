package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fabricofdreams/falcon9dash/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard",
		Long: `Serve loads the launch data and serves the dashboard page.

The page keeps a websocket open to the server. Changing the launch site
redraws both charts; moving the payload slider redraws only the scatter.
Charts are also available as JSON under /api and as PNG or SVG images
under /chart.

Examples:
  # Serve on the default address
  launchdash serve

  # Serve a SQLite database on all interfaces
  launchdash serve -d launches.db -l 0.0.0.0:8050`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", "", "Listen address host:port (default: 127.0.0.1:8050)")
	cmd.Flags().Bool("pretty", false, "Indent the served page markup")
	cmd.Flags().Bool("no-compress", false, "Disable brotli response compression")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("listen") {
		if cfg.ListenAddr, err = flags.GetString("listen"); err != nil {
			return err
		}
	}
	if flags.Changed("pretty") {
		if cfg.PrettyHTML, err = flags.GetBool("pretty"); err != nil {
			return err
		}
	}
	noCompress, err := flags.GetBool("no-compress")
	if err != nil {
		return err
	}
	if noCompress {
		cfg.Compress = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr(), slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := openDashboard(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(d,
		server.WithLogger(logger),
		server.WithRenderer(newRenderer(cfg)),
		server.WithVersion(getVersion()),
		server.WithPrettyHTML(cfg.PrettyHTML),
		server.WithCompression(cfg.Compress),
		server.WithTimeouts(cfg.ReadHeaderTimeout, cfg.ShutdownTimeout),
	)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}
