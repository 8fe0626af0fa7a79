package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabricofdreams/falcon9dash/internal/config"
)

// NewRootCmd creates the root command for launchdash.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launchdash",
		Short: "Interactive dashboard for SpaceX launch records",
		Long: `launchdash loads SpaceX Falcon 9 launch records from a CSV file or a SQLite
database and presents them as an interactive dashboard.

The dashboard has a launch site dropdown driving a success pie chart, and a
payload range slider that, together with the site, drives a scatter chart
of payload mass against landing outcome coloured by booster version.

Settings are read from .launchdash in the current directory, the XDG config
directory, or the home directory. Flags override the file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .launchdash in current, XDG config or home directory)")
	cmd.PersistentFlags().StringP("data", "d", "",
		"Launch data file, CSV or SQLite (default: "+config.DefaultDataPath+")")
	cmd.PersistentFlags().String("table", "", "SQLite table holding the launch records")
	cmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON lines")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
