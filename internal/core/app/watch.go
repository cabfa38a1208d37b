package app

import (
	"context"
	"errors"
	"log/slog"

	"libdeps/internal/core/watcher"
)

// StartWatcher requests a full rescan whenever files below the libs
// directory change. Rescans stop when ctx ends.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Scan.ExcludeDirs,
		a.Config.Scan.ExcludeFiles,
		func(paths []string) { a.HandleChanges(ctx, paths) },
	)
	if err != nil {
		return err
	}
	a.activeWatcher = w
	return w.Watch([]string{a.layout.LibsPath()})
}

// HandleChanges reacts to a debounced batch of changed paths. Scan results
// are never patched incrementally; any change triggers a full rescan.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	slog.Info("detected changes", "count", len(paths))
	if _, err := a.RequestRescan(ctx, "watch"); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		slog.Error("rescan after change failed", "error", err)
	}
}
