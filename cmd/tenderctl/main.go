// Package main provides a CLI for querying the tender platform API from a
// terminal. Output is JSON on stdout so it composes with jq.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tenderai/internal/credentials"
	"tenderai/internal/platform/config"
	"tenderai/internal/platform/logger"
	"tenderai/internal/platform/metrics"
	"tenderai/internal/platform/tracer"
	"tenderai/pkg/apiclient"
	"tenderai/pkg/apierrors"
)

// app holds the wired dependencies shared by all subcommands.
type app struct {
	client   *apiclient.Client
	tokens   *credentials.StorageTokenProvider
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	log      *slog.Logger
	stdout   io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tenderctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	baseURL := fs.String("url", "", "API base URL (overrides config)")
	timeout := fs.Duration("timeout", 0, "Per-request timeout (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: json or console")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log := logger.New(logger.Options{Level: level, Format: cfg.LogFormat, Writer: stderr})

	a, err := newApp(cfg, log, stdout)
	if err != nil {
		fmt.Fprintln(stderr, failureMessage(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	err = a.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
	a.logMetrics(ctx)
	if err != nil {
		apierrors.Log(ctx, log, err, "command failed", "command", fs.Arg(0), "elapsed", time.Since(start))
		fmt.Fprintln(stderr, failureMessage(err))
		return 1
	}
	return 0
}

func newApp(cfg config.Client, log *slog.Logger, stdout io.Writer) (*app, error) {
	var storage credentials.Storage = credentials.NewMemoryStore()
	if cfg.CredentialsFile != "" {
		fileStore, err := credentials.NewFileStore(cfg.CredentialsFile, cfg.CredentialsPassphrase)
		if err != nil {
			return nil, err
		}
		storage = fileStore
	}
	tokens := credentials.NewStorageTokenProvider(storage, credentials.WithLogger(log))

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	client, err := apiclient.New(cfg.BaseURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithTokenProvider(tokens),
		apiclient.WithLogger(log),
		apiclient.WithMetrics(m),
		apiclient.WithTracer(tracer.NewOTel()),
	)
	if err != nil {
		return nil, err
	}
	client.SetAuthRefresher(credentials.NewHTTPRefresher(client, tokens))

	return &app{
		client:   client,
		tokens:   tokens,
		metrics:  m,
		registry: registry,
		log:      log,
		stdout:   stdout,
	}, nil
}

// logMetrics emits a debug summary of the client counters for this run.
func (a *app) logMetrics(ctx context.Context) {
	families, err := a.registry.Gather()
	if err != nil {
		a.log.DebugContext(ctx, "gathering metrics failed", "error", err)
		return
	}
	for _, mf := range families {
		total := 0.0
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				total += metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				total += float64(metric.GetHistogram().GetSampleCount())
			}
		}
		a.log.DebugContext(ctx, "client metric", "name", mf.GetName(), "value", total)
	}
}

// failureMessage pairs the user-facing sentence with the concrete detail
// when they differ.
func failureMessage(err error) string {
	msg := apierrors.UserMessage(err)
	if detail := err.Error(); detail != "" && detail != msg {
		return msg + ": " + detail
	}
	return msg
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, `Usage: tenderctl [global flags] <command> [flags]

Commands:
  metrics                 Dashboard summary metrics
  activity                Recent activity feed (-limit, -offset, -skip-invalid)
  team                    Team performance (-skip-invalid)
  pipeline                Tender pipeline (-page, -page-size, -status, -priority, -search, -sort-by, -sort-order)
  stats                   Pipeline statistics
  tender                  Tender details (-id)
  charts                  Dashboard chart data (-type, -period)
  export                  Download dashboard export (-format, -out)
  token set               Store credentials (-access, -refresh)
  token clear             Remove stored credentials

Global flags:`)
	fs.PrintDefaults()
}
