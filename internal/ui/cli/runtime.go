package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	coreapp "libdeps/internal/core/app"
	"libdeps/internal/core/config"
	coreerrors "libdeps/internal/core/errors"
	"libdeps/internal/data/history"
	"libdeps/internal/shared/observability"
	"libdeps/internal/shared/util"
	"libdeps/internal/ui/report"
)

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "libdeps v%s\n", versionString)
		return 0
	}

	cleanupLogs := configureLogging(opts.ui, opts.verbose, stderr)
	defer cleanupLogs()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	config.ApplyEnvOverrides(cfg)
	if err := applyFlagOverrides(opts, cfg); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	root, err := config.ResolveRoot(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	cfg.Root = root
	if err := coreapp.LayoutFromConfig(cfg).CheckMarker(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(ctx, observability.TracingOptions{
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			ServiceName: cfg.Tracing.ServiceName,
		})
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	analysis, err := coreapp.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer func() {
		if err := analysis.Close(context.Background()); err != nil {
			slog.Warn("failed to close app", "error", err)
		}
	}()
	analysis.SetFileMode(opts.files)

	if cfg.Metrics.Enabled {
		server := observability.NewServer(cfg.Metrics.Address, coreapp.NewHealthService(analysis).Report)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start metrics server", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
	}

	result, scanErr := analysis.Rescan(ctx)
	if scanErr != nil {
		if !opts.ui || !coreerrors.CodeOf(scanErr).Retryable() {
			fmt.Fprintln(stderr, scanErr.Error())
			return 1
		}
		slog.Warn("initial analysis incomplete", "error", scanErr)
	}

	var runs []history.Run
	if opts.history {
		runs, err = loadHistory(analysis.History(), cfg, opts)
		if err != nil {
			slog.Error("history mode failed", "error", err)
			return 1
		}
	}

	if opts.ui {
		if cfg.Watch.Enabled {
			if err := analysis.StartWatcher(ctx); err != nil {
				slog.Error("failed to start watcher", "error", err)
				return 1
			}
		}
		if err := runUI(ctx, analysis, runs); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	if err := printResult(stdout, stderr, result, opts); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if opts.history {
		if err := printHistory(stdout, runs, opts); err != nil {
			slog.Error("failed to print history", "error", err)
			return 1
		}
	}

	if !cfg.Watch.Enabled {
		return 0
	}

	analysis.SetUpdateHandler(func(coreapp.Update) {
		if err := printResult(stdout, stderr, analysis.Current(), opts); err != nil {
			slog.Error("failed to print result", "error", err)
		}
	})
	if err := analysis.StartWatcher(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}
	slog.Info("watching for changes", "path", analysis.Layout().LibsPath())
	<-ctx.Done()
	return 0
}

// printResult writes the textual reports of one pass. Diagnostics go to
// stderr, the reports to stdout.
func printResult(stdout, stderr io.Writer, result *coreapp.Result, opts cliOptions) error {
	if result == nil {
		return nil
	}
	if err := report.WriteUnresolved(stderr, result.Unresolved); err != nil {
		return err
	}
	if err := report.WriteDrift(stdout, result.Drift); err != nil {
		return err
	}

	collection := result.Collection
	if names := splitList(opts.subgraph); len(names) > 0 {
		sub, err := collection.Subgraph(names)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, sub.String())
		return report.WriteCycles(stdout, sub.Cycles())
	}
	if opts.module != "" {
		return report.WriteModule(stdout, collection, opts.module)
	}

	if !result.FileMode {
		if err := report.WriteDescriptorSummary(stdout, collection); err != nil {
			return err
		}
	}
	return report.WriteCycles(stdout, result.Cycles)
}

func loadHistory(store *history.Store, cfg *config.Config, opts cliOptions) ([]history.Run, error) {
	if store == nil {
		return nil, fmt.Errorf("history store unavailable")
	}
	since, err := parseSince(opts.since)
	if err != nil {
		return nil, err
	}
	return store.LoadRuns(cfg.DB.ProjectKey, since, opts.historyLimit)
}

func printHistory(w io.Writer, runs []history.Run, opts cliOptions) error {
	fmt.Fprintf(w, "\nCoverage trend (%d runs):\n", len(runs))
	if err := report.WriteTrendTable(w, runs); err != nil {
		return err
	}
	if opts.historyJSON == "" {
		return nil
	}
	data, err := report.RenderTrendJSON(runs)
	if err != nil {
		return err
	}
	return util.WriteFileWithDirs(opts.historyJSON, data, 0o644)
}

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(config.DefaultConfigPath())
}

func configureLogging(uiMode, verbose bool, fallback io.Writer) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := fallback
	closeFn := func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	return filepath.Join(config.StateDir(), "libdeps.log")
}
