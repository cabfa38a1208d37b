package app

import (
	"context"
	"log/slog"
	"time"

	coreerrors "libdeps/internal/core/errors"
	"libdeps/internal/data/history"
	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"
	"libdeps/internal/engine/scan"
	"libdeps/internal/shared/observability"
	"libdeps/internal/shared/util"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Rescan inventories the whole collection again and analyzes it.
func (a *App) Rescan(ctx context.Context) (*Result, error) {
	a.passMu.Lock()
	defer a.passMu.Unlock()
	return a.rescan(ctx, "manual")
}

// RequestRescan is Rescan behind the rescan rate limit. It blocks until the
// limiter admits the request or ctx ends.
func (a *App) RequestRescan(ctx context.Context, trigger string) (*Result, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	a.passMu.Lock()
	defer a.passMu.Unlock()
	return a.rescan(ctx, trigger)
}

// Reanalyze rebuilds maps and the collection from the last inventory. The
// first call scans.
func (a *App) Reanalyze(ctx context.Context) (*Result, error) {
	a.passMu.Lock()
	defer a.passMu.Unlock()
	if a.inventory == nil {
		return a.rescan(ctx, "initial")
	}
	return a.analyze(ctx)
}

func (a *App) rescan(ctx context.Context, trigger string) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Rescan", trace.WithAttributes(
		attribute.String("trigger", trigger),
	))
	defer span.End()

	start := time.Now()
	mods, err := a.scanner.Scan(ctx)
	observability.PhaseDuration.WithLabelValues("scan").Observe(time.Since(start).Seconds())
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	a.inventory = scan.ApplyAssignments(mods, a.Config.Assignments)
	observability.RescansTotal.WithLabelValues(trigger).Inc()
	slog.Debug("scan finished", "modules", len(a.inventory), "duration", time.Since(start))

	return a.analyze(ctx)
}

// analyze runs map building and graph analysis on the current inventory and
// publishes the result. A root module without files still publishes an empty
// result and returns ROOT_MODULE_NOT_FOUND.
func (a *App) analyze(ctx context.Context) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Analyze", trace.WithAttributes(
		attribute.String("root_module", a.rootModule),
		attribute.Bool("file_mode", a.fileMode),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.fileMode && a.rootModule == "" {
		err := coreerrors.New(coreerrors.CodeConfiguration, "file mode requires a root module")
		failSpan(span, err)
		return nil, err
	}

	start := time.Now()
	all := scan.Flatten(a.inventory)
	files := scan.Without(all, scan.BuildDescriptor)
	opts := depmap.Options{Exclude: a.Config.ExcludedModules()}
	observability.FilesScanned.Set(float64(len(files)))

	mapped, mapErr := a.buildMap(ctx, files, opts)
	if mapErr != nil && !coreerrors.CodeOf(mapErr).Retryable() {
		failSpan(span, mapErr)
		return nil, mapErr
	}

	var drift []depmap.Drift
	if a.Config.Scan.TrackBuildDescriptors && !a.fileMode {
		drift = a.descriptorDrift(files, scan.Only(all, scan.BuildDescriptor), mapped, opts)
	}

	analyzeStart := time.Now()
	// File mode nodes are file names plus the synthetic root; exclusion
	// already happened while mapping.
	buildOpts := graph.BuildOptions{}
	if !a.fileMode {
		buildOpts.Exclude = opts.Exclude
		buildOpts.HasBuildDescriptor = a.layout.HasBuildDescriptor
	}
	collection := graph.Build(mapped.Graph, buildOpts)
	result := &Result{
		RunID:      uuid.NewString(),
		RootModule: a.rootModule,
		FileMode:   a.fileMode,
		Collection: collection,
		Cycles:     collection.Cycles(),
		Unresolved: mapped.Unresolved,
		Drift:      drift,
		FileCount:  len(files),
	}
	if !a.fileMode {
		result.Missing = collection.MissingDescriptors()
	}
	observability.PhaseDuration.WithLabelValues("analyze").Observe(time.Since(analyzeStart).Seconds())
	result.Duration = time.Since(start)
	result.Finished = time.Now()

	span.SetAttributes(
		attribute.String("run_id", result.RunID),
		attribute.Int("modules", collection.Len()),
		attribute.Int("edges", collection.EdgeCount()),
		attribute.Int("cycles", len(result.Cycles)),
	)
	if mapErr != nil {
		failSpan(span, mapErr)
	}

	a.publish(result)
	return result, mapErr
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	observability.AnalysisErrorsTotal.WithLabelValues(string(coreerrors.CodeOf(err))).Inc()
}

func (a *App) buildMap(ctx context.Context, files []scan.File, opts depmap.Options) (depmap.Result, error) {
	_, span := observability.Tracer.Start(ctx, "app.BuildMap")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.PhaseDuration.WithLabelValues("map").Observe(time.Since(start).Seconds())
	}()

	switch {
	case a.fileMode:
		return depmap.BuildFilteredFileMap(files, a.rootModule, opts)
	case a.rootModule != "":
		return depmap.BuildFilteredModuleMap(files, a.rootModule, opts)
	default:
		return depmap.BuildModuleMap(files, opts), nil
	}
}

// descriptorDrift compares the unfiltered file map with the references of
// the build descriptors.
func (a *App) descriptorDrift(files, descriptors []scan.File, mapped depmap.Result, opts depmap.Options) []depmap.Drift {
	fileDeps := mapped.Graph
	if a.rootModule != "" {
		fileDeps = depmap.BuildModuleMap(files, opts).Graph
	}
	declared := depmap.BuildDescriptorMap(descriptors, fileDeps, opts)
	drift := depmap.CompareDescriptors(fileDeps, declared.Graph)
	if len(drift) > 0 {
		slog.Info("build descriptor drift", "modules", len(drift))
	}
	return drift
}

// publish installs result as current, then updates metrics, history, outputs
// and the update handler.
func (a *App) publish(result *Result) {
	a.current.Store(result)

	c := result.Collection
	observability.GraphModules.Set(float64(c.Len()))
	observability.GraphEdges.Set(float64(c.EdgeCount()))
	observability.GraphCycles.Set(float64(len(result.Cycles)))
	observability.UnresolvedIncludes.Set(float64(len(result.Unresolved)))
	observability.MissingDescriptors.Set(float64(len(result.Missing)))

	a.recordRun(result)
	if err := a.GenerateOutputs(result); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	slog.Info("analysis complete",
		"run_id", result.RunID,
		"root_module", result.RootModule,
		"modules", c.Len(),
		"files", result.FileCount,
		"edges", c.EdgeCount(),
		"cycles", len(result.Cycles),
		"unresolved", len(result.Unresolved),
		"missing_descriptors", len(result.Missing),
		"duration", result.Duration,
		"heap_mb", util.HeapAllocMB(),
	)
	a.emitUpdate(result.update())
}

func (a *App) recordRun(result *Result) {
	if a.history == nil {
		return
	}
	_, err := a.history.SaveRun(history.Run{
		RunID:              result.RunID,
		ProjectKey:         a.Config.DB.ProjectKey,
		Timestamp:          result.Finished,
		RootModule:         result.RootModule,
		ModuleCount:        result.Collection.Len(),
		FileCount:          result.FileCount,
		EdgeCount:          result.Collection.EdgeCount(),
		CycleCount:         len(result.Cycles),
		UnresolvedCount:    len(result.Unresolved),
		MissingDescriptors: len(result.Missing),
		MaxLevel:           result.Collection.MaxLevel(),
	})
	if err != nil {
		slog.Warn("failed to record run", "run_id", result.RunID, "error", err)
	}
}

// ToggleBuildDescriptor flips one module's descriptor flag on a copy of the
// current collection and publishes the copy. Structure is untouched, so no
// history row is written.
func (a *App) ToggleBuildDescriptor(name string) (bool, error) {
	a.passMu.Lock()
	defer a.passMu.Unlock()

	cur := a.current.Load()
	if cur == nil {
		return false, coreerrors.New(coreerrors.CodeInternal, "no analysis result yet")
	}
	next := cur.Collection.Clone()
	has, err := next.ToggleBuildDescriptor(name)
	if err != nil {
		return false, err
	}
	a.replaceCollection(cur, next)
	slog.Info("build descriptor toggled", "module", name, "has_build_descriptor", has)
	return has, nil
}

// RefreshBuildDescriptors re-reads every descriptor flag from disk.
func (a *App) RefreshBuildDescriptors() error {
	a.passMu.Lock()
	defer a.passMu.Unlock()

	cur := a.current.Load()
	if cur == nil {
		return coreerrors.New(coreerrors.CodeInternal, "no analysis result yet")
	}
	if cur.FileMode {
		return nil
	}
	next := cur.Collection.Clone()
	next.RefreshBuildDescriptors(a.layout.HasBuildDescriptor)
	a.replaceCollection(cur, next)
	return nil
}

func (a *App) replaceCollection(cur *Result, c *graph.Collection) {
	result := cur.withCollection(c)
	a.current.Store(result)
	observability.MissingDescriptors.Set(float64(len(result.Missing)))
	a.emitUpdate(result.update())
}

// Subgraph projects the current collection onto names.
func (a *App) Subgraph(names []string) (*graph.Collection, error) {
	cur := a.current.Load()
	if cur == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "no analysis result yet")
	}
	return cur.Collection.Subgraph(names)
}
