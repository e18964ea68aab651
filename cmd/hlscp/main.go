package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/hollowness-inside/hlscp/pkg/m3u8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	headers     string
	concurrent  int
	rps         float64
	timeout     time.Duration
	metricsFile string
	remux       string
	ffmpegPath  string
	logLevel    string
)

func runE(cmd *cobra.Command, args []string) error {
	source, dest := args[0], args[1]

	// Configure logging
	verbose, _ := cmd.Flags().GetBool("verbose")
	err := m3u8.ConfigureLogging(m3u8.LogConfig{
		Level:   logLevel,
		Verbose: verbose,
		Output:  zerolog.ConsoleWriter{Out: os.Stderr},
	})
	if err != nil {
		return err
	}

	// Load headers
	headerMap, err := m3u8.LoadHeaders(headers)
	if err != nil {
		return err
	}

	var metrics *m3u8.Metrics
	if metricsFile != "" {
		metrics = m3u8.NewMetrics()
	}

	copier, err := m3u8.NewCopier(m3u8.Options{
		Concurrency:       concurrent,
		Headers:           headerMap,
		RequestsPerSecond: rps,
		Timeout:           timeout,
		Metrics:           metrics,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runErr := copier.CopyRendition(ctx, source, dest)

	if metrics != nil {
		if err := metrics.WriteTextfile(metricsFile); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	if remux != "" {
		name, err := m3u8.PlaylistFilename(source)
		if err != nil {
			return err
		}
		if err := m3u8.Remux(ctx, filepath.Join(dest, name), remux, ffmpegPath); err != nil {
			return fmt.Errorf("failed to remux: %w", err)
		}
	}

	fmt.Println("HLS copy completed successfully!")
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hlscp <source-url> <destination-dir>",
		Short:         "Copy an HLS rendition from a remote source to a local directory",
		Args:          cobra.ExactArgs(2),
		RunE:          runE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&headers, "headers", "", "Path to YAML or JSON file containing request headers")
	flags.IntVar(&concurrent, "concurrent", 0, "Max concurrent segment downloads per playlist (0 = unbounded)")
	flags.Float64Var(&rps, "rate", 0, "Max requests per second (0 = unlimited)")
	flags.DurationVar(&timeout, "timeout", 0, "Per-request timeout (0 = none)")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write prometheus metrics to FILE after the run")
	flags.StringVar(&remux, "remux", "", "Stream-copy the mirrored playlist into OUTPUT with ffmpeg")
	flags.StringVar(&ffmpegPath, "ffmpeg", "", "Path to ffmpeg executable")

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
