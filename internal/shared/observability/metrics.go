package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "libdeps_phase_seconds",
		Help:    "Time spent in one pipeline phase (scan, map, analyze).",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "libdeps_files_scanned",
		Help: "Number of files inventoried by the last scan.",
	})

	GraphModules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "libdeps_graph_modules",
		Help: "Number of modules in the current collection.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "libdeps_graph_edges",
		Help: "Number of direct dependency edges in the current collection.",
	})

	GraphCycles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "libdeps_graph_cycles",
		Help: "Number of distinct dependency cycles in the current collection.",
	})

	UnresolvedIncludes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "libdeps_unresolved_includes",
		Help: "Include targets of the last pass that matched no scanned file.",
	})

	MissingDescriptors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "libdeps_missing_build_descriptors",
		Help: "Modules in the current collection without a build descriptor.",
	})

	RescansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "libdeps_rescans_total",
		Help: "Full rescans started, by trigger.",
	}, []string{"trigger"})

	AnalysisErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "libdeps_analysis_errors_total",
		Help: "Failed or partial analysis passes, by error code.",
	}, []string{"code"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "libdeps_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
