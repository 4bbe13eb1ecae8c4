package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arundhati-c/datatapevalidation/pkg/cli"
	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/config"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/validator"
	"github.com/arundhati-c/datatapevalidation/pkg/schema"
	"github.com/arundhati-c/datatapevalidation/pkg/telemetry/logging"
	"github.com/arundhati-c/datatapevalidation/pkg/telemetry/metrics"
	"github.com/arundhati-c/datatapevalidation/pkg/watch"
)

var watchFlags struct {
	dir       string
	codesFile string
	history   bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Validate tapes as they arrive",
	Long: `Watch the data directory and validate every tape that is created or
modified there.

Each settled file is parsed, validated and reported exactly as with
'datatape validate'. When a catalog refresh schedule is configured,
the code index is re-fetched on that schedule so a long-running
watcher does not validate against a stale catalog. When a metrics
listen address is configured, /metrics is served there.

Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "directory to watch (overrides config data dir)")
	watchCmd.Flags().StringVar(&watchFlags.codesFile, "codes-file", "", "catalog snapshot CSV for the initial index (default: fetch from API)")
	watchCmd.Flags().BoolVar(&watchFlags.history, "history", false, "record runs in the SQLite history database")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	if watchFlags.dir != "" {
		cfg.Validation.DataDir = watchFlags.dir
	}
	if watchFlags.history {
		cfg.History.Enabled = true
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging, os.Stderr); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger := slog.Default().With("component", "cmd.watch")

	sch, err := schema.Load(cfg.Validation.SchemaPath)
	if err != nil {
		return cli.NewConfigError("validation.schema_path", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if *cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	}

	client := codes.NewClient(codes.ClientConfig{
		URL:     cfg.Catalog.URL,
		Timeout: cfg.Catalog.Timeout,
	})
	idx, err := loadInitialIndex(ctx, client, collector)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	runner := &tapeRunner{
		cfg:    cfg,
		schema: sch,
		opts: validator.Options{
			ValidateFieldTypes: cfg.Validation.CheckFieldTypes,
			ValidateCodes:      *cfg.Validation.CheckCodes,
		},
		collector: collector,
		logger:    logger,
	}

	if cfg.History.Enabled {
		store, err := openHistory(cfg)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()
		runner.history = store
	}

	refresher := codes.NewRefresher(client, cfg.Catalog.RefreshSchedule, idx)
	if collector != nil {
		refresher.OnRefresh(func(next codes.Index) {
			collector.Catalog().RecordFetch(nil, 0, len(next))
		})
	}
	if err := refresher.Start(ctx); err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer refresher.Stop()

	var metricsSrv *http.Server
	if collector != nil && cfg.Telemetry.Metrics.ListenAddress != "" {
		metricsSrv = serveMetrics(cfg.Telemetry.Metrics.ListenAddress, collector, logger)
		defer shutdownMetrics(metricsSrv, logger)
	}

	watcher, err := watch.NewTapeWatcher(&watch.TapeWatcherConfig{
		Path:             cfg.Validation.DataDir,
		DebounceInterval: cfg.Watch.DebounceInterval,
		Extensions:       cfg.Watch.Extensions,
		SkipHidden:       true,
	}, logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Printf("Watching %s for tapes. Press Ctrl+C to stop.\n", cfg.Validation.DataDir)

	// Validations triggered by file events run on debouncer goroutines;
	// serialize them so reports and history writes never interleave.
	var runMu sync.Mutex
	err = watcher.Watch(ctx, func(path string) error {
		runMu.Lock()
		defer runMu.Unlock()

		summary, err := runner.ValidateTape(ctx, path, refresher.Index())
		if err != nil {
			return err
		}
		printTapeSummary(summary)
		return nil
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// loadInitialIndex builds the index the watcher starts with, from the
// snapshot file or the live API.
func loadInitialIndex(ctx context.Context, client *codes.Client, collector *metrics.Collector) (codes.Index, error) {
	var records []codes.CatalogRecord
	var err error

	start := time.Now()
	if watchFlags.codesFile != "" {
		records, err = codes.LoadSnapshot(watchFlags.codesFile)
	} else {
		records, err = client.Fetch(ctx)
	}

	idx := codes.BuildIndex(records)
	if collector != nil {
		collector.Catalog().RecordFetch(err, time.Since(start), len(idx))
	}
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, cli.NewPreconditionError("code catalog", "no field types with codes; nothing to validate against")
	}
	return idx, nil
}

// serveMetrics starts the /metrics endpoint in the background.
func serveMetrics(addr string, collector *metrics.Collector, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("metrics endpoint listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "error", err)
		}
	}()
	return srv
}

// shutdownMetrics stops the metrics server with a short grace period.
func shutdownMetrics(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("metrics endpoint shutdown failed", "error", err)
	}
}
