package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"ktsuppress/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ktsuppress",
		Short: "Suppress unused parameter and variable warnings in Kotlin sources",
		Long: `ktsuppress reads a Kotlin compiler warning log and inserts @Suppress
annotations above every parameter or variable reported as never used.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runFix,
	}
	rootCmd.Version = version.Version

	// global flags
	rootCmd.PersistentFlags().String("config", "", "path to ktsuppress.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-file progress lines")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how file names are shown in scan and the progress view (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	addFixFlags(rootCmd)

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main runs the root command; any error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
