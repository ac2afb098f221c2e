// Package main implements the insights CLI for querying the job-market analytics backend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/market-insights/internal/config"
	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Job market insights client",
	Long: "Query market-wide and role-specific skill demand, analyze a resume against current postings, " +
		"and page through similar jobs from the analytics backend.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configPath     string
	backendURL     string
	outputFormat   string
	verbose        bool
	skipValidation bool
	metricsOut     string
)

// app holds what setup resolved for the running command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	client   *insights.Client
}

var current *app

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "Analytics backend base URL (overrides BACKEND_URL)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&skipValidation, "skip-validation", false, "Do not validate response bodies")
	rootCmd.PersistentFlags().StringVar(&metricsOut, "metrics-out", "", "Write client metrics in Prometheus text format to this file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs the root command with args and flushes metrics and logs afterwards,
// whether or not the command failed. An interrupt cancels in-flight requests.
func execute(args []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	current = nil
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	if current != nil {
		if metricsOut != "" {
			if werr := writeMetrics(metricsOut, current.registry); werr != nil && err == nil {
				err = werr
			}
		}
		_ = current.logger.Sync()
	}
	return err
}

// setup resolves configuration and builds the client for every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if outputFormat != "" {
		cfg.Output = outputFormat
	}
	if verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	if skipValidation {
		cfg.SkipValidation = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.Environment)
	registry := prometheus.NewRegistry()

	client := insights.New(&insights.Options{
		BaseURL:        cfg.BackendURL,
		Timeout:        timeout,
		Logger:         logger,
		Metrics:        observability.NewMetrics(registry),
		SkipValidation: cfg.SkipValidation,
	})

	logger.Debug("configuration resolved",
		zap.String("backend_url", client.BaseURL()),
		zap.Duration("timeout", timeout),
		zap.Bool("skip_validation", cfg.SkipValidation),
	)

	current = &app{cfg: cfg, logger: logger, registry: registry, client: client}
	return nil
}

func writeMetrics(path string, registry *prometheus.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := observability.WriteText(f, registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// render writes v as indented JSON in json mode and calls text otherwise.
func render(cmd *cobra.Command, v interface{}, text func(p *observability.Printer)) error {
	if current.cfg.Output == config.OutputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	text(observability.NewPrinter(cmd.OutOrStdout()))
	return nil
}
