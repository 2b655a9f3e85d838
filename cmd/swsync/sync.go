package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/shopware/sw-sync-cli/pkg/cli"
	"github.com/shopware/sw-sync-cli/pkg/client"
	"github.com/shopware/sw-sync-cli/pkg/config"
	"github.com/shopware/sw-sync-cli/pkg/errs"
	"github.com/shopware/sw-sync-cli/pkg/lookup"
	"github.com/shopware/sw-sync-cli/pkg/metrics"
	"github.com/shopware/sw-sync-cli/pkg/pipeline"
	"github.com/shopware/sw-sync-cli/pkg/profile"
)

var syncFlags struct {
	mode         string
	profilePath  string
	filePath     string
	inFlight     int
	tryCount     int
	disableIndex bool
	batchSize    int
	watch        string
	watchProfile bool
	metricsAddr  string
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Export or import entities between the remote API and a CSV file",
	Long: `Run the sync pipeline once, or on a recurring schedule with --watch.

Examples:
  swsync sync -m export -p product.yaml -f product.csv
  swsync sync -m import -p product.yaml -f product.csv --batch-size 200
  swsync sync -m export -p product.yaml -f product.csv --watch "*/15 * * * *"`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVarP(&syncFlags.mode, "mode", "m", "", "sync mode: export or import")
	syncCmd.Flags().StringVarP(&syncFlags.profilePath, "profile", "p", "", "profile YAML file path")
	syncCmd.Flags().StringVarP(&syncFlags.filePath, "file", "f", "", "CSV file path")
	syncCmd.Flags().IntVarP(&syncFlags.inFlight, "in-flight", "l", 0, "max concurrent remote requests (default from config)")
	syncCmd.Flags().IntVarP(&syncFlags.tryCount, "try-count", "t", 0, "max attempts per request (default from config)")
	syncCmd.Flags().BoolVarP(&syncFlags.disableIndex, "disable-index", "d", false, "skip trigger_index after import")
	syncCmd.Flags().IntVar(&syncFlags.batchSize, "batch-size", 0, "bulk_upsert batch size for import (default from config)")
	syncCmd.Flags().StringVar(&syncFlags.watch, "watch", "", "cron expression to re-run the pipeline on a schedule")
	syncCmd.Flags().BoolVar(&syncFlags.watchProfile, "watch-profile", false, "re-run when the profile file changes")
	syncCmd.Flags().StringVar(&syncFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	syncCmd.MarkFlagRequired("mode")
	syncCmd.MarkFlagRequired("profile")
	syncCmd.MarkFlagRequired("file")
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncFlags.mode != "export" && syncFlags.mode != "import" {
		return &errs.UsageError{Message: fmt.Sprintf("invalid mode %q, must be export or import", syncFlags.mode)}
	}

	cfg, err := loadEffectiveConfig(false)
	if err != nil {
		return &errs.UsageError{Message: "load config", Cause: err}
	}

	logLevel := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)

	apiClient, err := newClient(
		client.WithTryCount(cfg.Sync.TryCount),
		client.WithInFlightLimit(cfg.Sync.InFlightLimit),
		client.WithLogger(logger),
		client.WithRequestTimeout(cfg.Sync.RequestTimeout),
	)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(cfg.Metrics.Enabled || syncFlags.metricsAddr != "", nil)
	metricsAddr := syncFlags.metricsAddr
	if metricsAddr == "" && cfg.Metrics.Enabled {
		metricsAddr = cfg.Metrics.ListenAddress
	}

	ctx := cli.SetupSignalHandler()

	if metricsAddr != "" {
		go func() {
			logger.Info("serving metrics", "address", metricsAddr)
			if err := metrics.Serve(ctx, metricsAddr, collector); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if !cfg.Watch.Enabled && !syncFlags.watchProfile {
		return runSyncOnce(ctx, cfg, apiClient, logger, collector)
	}

	return watchAndRun(ctx, apiClient, logger, collector)
}

// loadEffectiveConfig reads the run config — from the package-level
// singleton on the first call, reloaded from disk on every call after
// (so a long-running --watch process picks up config edits between
// ticks) — and overlays any flags the user passed explicitly.
func loadEffectiveConfig(reload bool) (*config.Config, error) {
	if reload {
		if err := config.ReloadConfig(cfgFile); err != nil {
			return nil, err
		}
	} else if err := config.Initialize(cfgFile); err != nil {
		return nil, err
	}
	cfg := config.GetConfig()
	applySyncFlagOverrides(cfg)
	return cfg, nil
}

// applySyncFlagOverrides overlays explicitly-set flags onto cfg, leaving
// config-file values in place for anything not passed on the command
// line.
func applySyncFlagOverrides(cfg *config.Config) {
	if syncFlags.inFlight > 0 {
		cfg.Sync.InFlightLimit = syncFlags.inFlight
	}
	if syncFlags.tryCount > 0 {
		cfg.Sync.TryCount = syncFlags.tryCount
	}
	if syncFlags.batchSize > 0 {
		cfg.Sync.BatchSize = syncFlags.batchSize
	}
	if syncFlags.disableIndex {
		cfg.Sync.DisableIndex = true
	}
	if syncFlags.watch != "" {
		cfg.Watch.Enabled = true
		cfg.Watch.Schedule = syncFlags.watch
	}
}

// runSyncOnce loads and validates the profile, primes the lookup
// tables, and runs one export or import pass.
func runSyncOnce(ctx context.Context, cfg *config.Config, apiClient *client.Client, logger *slog.Logger, collector *metrics.Collector) error {
	p, err := profile.Load(syncFlags.profilePath, profile.Defaults{})
	if err != nil {
		return &errs.ProfileError{Cause: fmt.Errorf("load profile: %w", err)}
	}

	schema, err := apiClient.FetchSchema(ctx)
	if err != nil {
		return &errs.NetworkFatalError{Message: "fetch schema", Cause: err}
	}
	warnings, err := profile.Validate(p, schema)
	if err != nil {
		return &errs.ProfileError{Cause: fmt.Errorf("validate profile: %w", err)}
	}
	for _, w := range warnings {
		logger.Warn("profile validation warning", "detail", w.String())
	}

	tables, err := lookup.Prime(ctx, apiClient)
	if err != nil {
		return &errs.NetworkFatalError{Message: "prime lookup tables", Cause: err}
	}

	hosts, err := pipeline.NewHostPool(cfg.Sync.InFlightLimit, tables, logger, p.SerializeScript, p.DeserializeScript)
	if err != nil {
		return &errs.ProfileError{Cause: fmt.Errorf("initialize scripting host pool: %w", err)}
	}
	defer hosts.Close()

	reporter := cli.NewProgressReporter(os.Stderr)
	start := time.Now()

	var summary pipeline.Summary
	switch syncFlags.mode {
	case "export":
		f, err := os.Create(syncFlags.filePath)
		if err != nil {
			return &errs.UsageError{Message: "create output file", Cause: err}
		}
		defer f.Close()
		summary, err = pipeline.Export(ctx, p, apiClient, hosts, cfg.Sync.PageLimit, f, logger, reporter)
		if err != nil {
			recordSyncOutcome(collector, p.Entity, syncFlags.mode, summary, err)
			return &errs.BatchError{Message: "export failed", Cause: err}
		}
	case "import":
		f, err := os.Open(syncFlags.filePath)
		if err != nil {
			return &errs.UsageError{Message: "open input file", Cause: err}
		}
		defer f.Close()
		summary, err = pipeline.Import(ctx, p, apiClient, hosts, f, cfg.Sync.BatchSize, cfg.Sync.DisableIndex, logger, reporter, collector)
		if err != nil {
			recordSyncOutcome(collector, p.Entity, syncFlags.mode, summary, err)
			return &errs.BatchError{Message: "import failed", Cause: err}
		}
	}

	recordSyncOutcome(collector, p.Entity, syncFlags.mode, summary, nil)
	fmt.Printf("sent=%d succeeded=%d failed=%d elapsed=%s throughput=%.1f/s\n",
		summary.Sent, summary.Succeeded, summary.Failed, time.Since(start).Round(time.Millisecond), summary.Throughput())
	return nil
}

func recordSyncOutcome(collector *metrics.Collector, entity, mode string, summary pipeline.Summary, runErr error) {
	collector.RecordOutcome(entity, mode, "succeeded", summary.Succeeded)
	collector.RecordOutcome(entity, mode, "failed", summary.Failed)
	collector.ObserveRunDuration(entity, mode, summary.Elapsed)
	if runErr != nil {
		collector.RecordError(entity, mode, errorKind(runErr))
	}
}

// errorKind names runErr's error type for the errors_total metric label,
// e.g. "BatchError", "NetworkFatalError".
func errorKind(err error) string {
	switch err.(type) {
	case *errs.UsageError:
		return "UsageError"
	case *errs.ProfileError:
		return "ProfileError"
	case *errs.AuthError:
		return "AuthError"
	case *errs.NetworkTransientError:
		return "NetworkTransientError"
	case *errs.NetworkFatalError:
		return "NetworkFatalError"
	case *errs.RowError:
		return "RowError"
	case *errs.BatchError:
		return "BatchError"
	case *errs.CancelledError:
		return "CancelledError"
	default:
		return "unknown"
	}
}

// watchAndRun re-invokes the sync pipeline on the configured cron
// schedule and/or whenever the profile file changes, until ctx is
// cancelled. Each tick reloads the run config from disk via
// config.ReloadConfig, so in-flight edits to config.yaml take effect
// on the next run without restarting the process.
func watchAndRun(ctx context.Context, apiClient *client.Client, logger *slog.Logger, collector *metrics.Collector) error {
	cfg := config.MustGetConfig()

	runAndLog := func() {
		freshCfg, err := loadEffectiveConfig(true)
		if err != nil {
			logger.Warn("reload config failed, using previous config", "error", err)
			freshCfg = config.MustGetConfig()
			applySyncFlagOverrides(freshCfg)
		}
		if err := runSyncOnce(ctx, freshCfg, apiClient, logger, collector); err != nil {
			logger.Error("scheduled sync run failed", "error", err)
		}
	}

	var sched *cron.Cron
	if cfg.Watch.Schedule != "" {
		sched = cron.New()
		if _, err := sched.AddFunc(cfg.Watch.Schedule, runAndLog); err != nil {
			return &errs.UsageError{Message: "invalid watch schedule", Cause: err}
		}
		sched.Start()
		defer sched.Stop()
		logger.Info("watching on cron schedule", "schedule", cfg.Watch.Schedule)
	}

	var watcher *fsnotify.Watcher
	if syncFlags.watchProfile {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return &errs.UsageError{Message: "create profile watcher", Cause: err}
		}
		defer watcher.Close()
		if err := watcher.Add(syncFlags.profilePath); err != nil {
			return &errs.UsageError{Message: "watch profile file", Cause: err}
		}
		logger.Info("watching profile for changes", "path", syncFlags.profilePath)
	}

	// Run once immediately so the caller doesn't wait for the first tick.
	runAndLog()

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if watcher != nil {
		events = watcher.Events
		watchErrs = watcher.Errors
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Info("profile changed, re-running", "path", ev.Name)
				runAndLog()
			}
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			logger.Warn("profile watcher error", "error", err)
		}
	}
}
