package cli

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"libdeps/internal/core/config"
)

const versionString = "1.0.0"

type cliOptions struct {
	configPath       string
	root             string
	rootModule       string
	sources          bool
	tests            bool
	buildDescriptors bool
	exclude          string
	preset           string
	files            bool
	subgraph         string
	module           string
	ui               bool
	watch            bool
	history          bool
	historyLimit     int
	historyJSON      string
	since            string
	trace            bool
	metrics          bool
	verbose          bool
	version          bool

	// set records which flags appeared on the command line.
	set map[string]bool
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("libdeps", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default ./libdeps.toml or the XDG config dir)")
	fs.StringVar(&opts.root, "root", "", "Collection root containing the marker file (default $LIBDEPS_ROOT or $BOOST_ROOT)")
	fs.StringVar(&opts.rootModule, "root-module", "", "Only analyze what this module transitively includes")
	fs.BoolVar(&opts.sources, "sources", true, "Scan src/ trees")
	fs.BoolVar(&opts.tests, "tests", false, "Scan test/ trees")
	fs.BoolVar(&opts.buildDescriptors, "build-descriptors", false, "Compare build descriptor dependencies with file dependencies")
	fs.StringVar(&opts.exclude, "exclude", "", "Comma separated modules to leave out of the analysis")
	fs.StringVar(&opts.preset, "preset", "", "Comma separated exclusion presets (cpp11, cpp20, no-serialization)")
	fs.BoolVar(&opts.files, "files", false, "Analyze files instead of modules (requires --root-module)")
	fs.StringVar(&opts.subgraph, "subgraph", "", "Comma separated modules to project the graph onto")
	fs.StringVar(&opts.module, "module", "", "Print dependency details of one module")
	fs.BoolVar(&opts.ui, "ui", false, "Enable terminal UI mode")
	fs.BoolVar(&opts.watch, "watch", false, "Rescan whenever the libs tree changes")
	fs.BoolVar(&opts.history, "history", false, "Record this run and print the coverage trend")
	fs.IntVar(&opts.historyLimit, "history-limit", 20, "Number of most recent runs shown with --history")
	fs.StringVar(&opts.historyJSON, "history-json", "", "Write the coverage trend as JSON to this path (requires --history)")
	fs.StringVar(&opts.since, "since", "", "Only show runs at/after this timestamp (RFC3339 or YYYY-MM-DD)")
	fs.BoolVar(&opts.trace, "trace", false, "Export OpenTelemetry spans to the configured endpoint")
	fs.BoolVar(&opts.metrics, "metrics", false, "Serve /metrics and /health on the configured address")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// applyFlagOverrides copies every flag given on the command line into cfg and
// rejects incompatible combinations.
func applyFlagOverrides(opts cliOptions, cfg *config.Config) error {
	if opts.files && strings.TrimSpace(opts.rootModule) == "" && cfg.RootModule == "" {
		return fmt.Errorf("--files requires --root-module")
	}
	if opts.historyJSON != "" && !opts.history {
		return fmt.Errorf("--history-json requires --history")
	}
	if opts.ui && (opts.subgraph != "" || opts.module != "") {
		return fmt.Errorf("--subgraph and --module cannot be combined with --ui")
	}

	if opts.set["root"] {
		cfg.Root = opts.root
	}
	if opts.set["root-module"] {
		cfg.RootModule = opts.rootModule
	}
	if opts.set["sources"] {
		v := opts.sources
		cfg.Scan.TrackSources = &v
	}
	if opts.set["tests"] {
		cfg.Scan.TrackTests = opts.tests
	}
	if opts.set["build-descriptors"] {
		cfg.Scan.TrackBuildDescriptors = opts.buildDescriptors
	}
	cfg.Filter.ExcludeModules = append(cfg.Filter.ExcludeModules, splitList(opts.exclude)...)
	cfg.Filter.Presets = append(cfg.Filter.Presets, splitList(opts.preset)...)
	if opts.history {
		cfg.DB.Enabled = true
	}
	if opts.watch {
		cfg.Watch.Enabled = true
	}
	if opts.trace {
		cfg.Tracing.Enabled = true
	}
	if opts.metrics {
		cfg.Metrics.Enabled = true
	}
	return config.Revalidate(cfg)
}

func splitList(value string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSince(value string) (time.Time, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return time.Time{}, nil
	}

	rfc3339, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return rfc3339.UTC(), nil
	}

	dateOnly, err := time.Parse("2006-01-02", raw)
	if err == nil {
		return dateOnly.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("--since must be RFC3339 or YYYY-MM-DD, got %q", value)
}
