package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"libdeps/internal/core/config"
	coreerrors "libdeps/internal/core/errors"
	"libdeps/internal/core/watcher"
	"libdeps/internal/data/history"
	"libdeps/internal/engine/scan"
	"libdeps/internal/shared/util"
)

// Update is pushed to the registered handler after every analysis pass.
type Update struct {
	RunID       string
	RootModule  string
	FileMode    bool
	ModuleCount int
	FileCount   int
	EdgeCount   int
	Cycles      [][]string
	Unresolved  int
	Missing     int
	Drift       int
}

// App owns the scan inventory and the current analysis result. Passes are
// serialized; readers always see a complete Result.
type App struct {
	Config *config.Config

	layout  scan.Layout
	scanner *scan.Scanner
	history *history.Store
	limiter *util.Limiter

	passMu     sync.Mutex
	inventory  []scan.ModuleFiles
	rootModule string
	fileMode   bool

	current atomic.Pointer[Result]

	updateMu sync.RWMutex
	onUpdate func(Update)

	activeWatcher *watcher.Watcher
}

// New validates the layout options and opens the history store when enabled.
// cfg.Root must already be resolved.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, coreerrors.New(coreerrors.CodeConfiguration, "config is required")
	}
	if cfg.Root == "" {
		return nil, coreerrors.New(coreerrors.CodeConfiguration, "collection root is required")
	}

	layout := LayoutFromConfig(cfg)
	scanner, err := scan.NewScanner(layout, ScanOptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:     cfg,
		layout:     layout,
		scanner:    scanner,
		limiter:    util.NewLimiter(cfg.Watch.MinInterval, 1),
		rootModule: cfg.RootModule,
	}

	if cfg.DB.Enabled {
		path := config.DBPath(cfg)
		store, err := history.Open(path, cfg.DB.BusyTimeout)
		if err != nil {
			return nil, coreerrors.AddContext(
				coreerrors.Wrap(err, coreerrors.CodeConfiguration, "open history store"),
				coreerrors.CtxPath, path)
		}
		a.history = store
		slog.Debug("history store opened", "path", path)
	}
	return a, nil
}

// LayoutFromConfig maps the layout keys of cfg onto a scan.Layout.
func LayoutFromConfig(cfg *config.Config) scan.Layout {
	return scan.Layout{
		Root:            cfg.Root,
		LibsDir:         cfg.LibsDir,
		MarkerFile:      cfg.MarkerFile,
		Namespace:       cfg.Namespace,
		Separator:       cfg.ModuleSeparator,
		SublibsMarker:   cfg.SublibsMarker,
		BuildDescriptor: cfg.BuildDescriptor,
	}
}

func ScanOptionsFromConfig(cfg *config.Config) scan.Options {
	return scan.Options{
		TrackSources:          cfg.Scan.SourcesTracked(),
		TrackTests:            cfg.Scan.TrackTests,
		TrackBuildDescriptors: cfg.Scan.TrackBuildDescriptors,
		Workers:               cfg.Scan.Workers,
		ExcludeDirs:           cfg.Scan.ExcludeDirs,
		ExcludeFiles:          cfg.Scan.ExcludeFiles,
	}
}

func (a *App) Layout() scan.Layout {
	return a.layout
}

// History returns the coverage log, or nil when it is disabled.
func (a *App) History() *history.Store {
	return a.history
}

// Current returns the latest analysis result, or nil before the first pass.
func (a *App) Current() *Result {
	return a.current.Load()
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

// CurrentUpdate summarizes the latest result the same way handlers see it.
func (a *App) CurrentUpdate() Update {
	return a.Current().update()
}

func (a *App) emitUpdate(update Update) {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(update)
	}
}

// SetRootModule switches between unfiltered (empty name) and root-filtered
// analysis. It takes effect on the next pass.
func (a *App) SetRootModule(name string) {
	a.passMu.Lock()
	defer a.passMu.Unlock()
	a.rootModule = name
}

// SetFileMode switches between module-level and file-level analysis. File
// mode needs a root module.
func (a *App) SetFileMode(enabled bool) {
	a.passMu.Lock()
	defer a.passMu.Unlock()
	a.fileMode = enabled
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	var errs []error
	if a.activeWatcher != nil {
		if err := a.activeWatcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close watcher: %w", err))
		}
		a.activeWatcher = nil
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history store: %w", err))
		}
		a.history = nil
	}
	return errors.Join(errs...)
}
