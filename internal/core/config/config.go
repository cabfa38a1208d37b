package config

import (
	"sort"
	"time"
)

type Config struct {
	Version         int    `toml:"version"`
	Root            string `toml:"root"`
	LibsDir         string `toml:"libs_dir"`
	MarkerFile      string `toml:"marker_file"`
	Namespace       string `toml:"namespace"`
	ModuleSeparator string `toml:"module_separator"`
	SublibsMarker   string `toml:"sublibs_marker"`
	BuildDescriptor string `toml:"build_descriptor"`
	RootModule      string `toml:"root_module"`

	Scan        Scan              `toml:"scan"`
	Filter      Filter            `toml:"filter"`
	Assignments map[string]string `toml:"assignments"`
	Output      Output            `toml:"output"`
	DB          Database          `toml:"db"`
	Watch       Watch             `toml:"watch"`
	Metrics     Metrics           `toml:"metrics"`
	Tracing     Tracing           `toml:"tracing"`
}

type Scan struct {
	TrackSources          *bool    `toml:"track_sources"`
	TrackTests            bool     `toml:"track_tests"`
	TrackBuildDescriptors bool     `toml:"track_build_descriptors"`
	Workers               int      `toml:"workers"`
	ExcludeDirs           []string `toml:"exclude_dirs"`
	ExcludeFiles          []string `toml:"exclude_files"`
}

// SourcesTracked reports whether src trees are scanned. Defaults to true.
func (s Scan) SourcesTracked() bool {
	if s.TrackSources == nil {
		return true
	}
	return *s.TrackSources
}

type Filter struct {
	ExcludeModules []string `toml:"exclude_modules"`
	Presets        []string `toml:"presets"`
}

type Output struct {
	DOT     string `toml:"dot"`
	TSV     string `toml:"tsv"`
	Mermaid string `toml:"mermaid"`
	// Markdown names a file whose libdeps marker block receives the
	// Mermaid diagram.
	Markdown       string `toml:"markdown"`
	MarkdownMarker string `toml:"markdown_marker"`
}

type Database struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	ProjectKey  string        `toml:"project_key"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Watch struct {
	Enabled     bool          `toml:"enabled"`
	Debounce    time.Duration `toml:"debounce"`
	MinInterval time.Duration `toml:"min_interval"`
}

type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

type Tracing struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	Insecure    bool   `toml:"insecure"`
	ServiceName string `toml:"service_name"`
}

// Presets are named lists of modules excluded together. The cpp lists name
// libraries superseded by the respective language standard.
var Presets = map[string][]string{
	"no-serialization": {"serialization"},
	"cpp11": {
		"function", "assert", "static_assert", "smart_ptr", "array", "tuple",
		"iterator", "move", "atomic", "bind", "lambda", "chrono", "random",
		"thread", "typeof", "type_index", "align", "ratio", "compatibility",
		"foreach", "system", "regex", "mpl",
	},
	"cpp20": {
		"function", "assert", "static_assert", "optional", "variant", "mpl",
		"smart_ptr", "array", "tuple", "iterator", "type_traits", "move",
		"atomic", "bind", "lambda", "chrono", "date_time", "random", "thread",
		"throw_exception", "preprocessor", "detail", "typeof", "any",
		"type_index", "align", "ratio", "compatibility", "foreach", "assign",
		"range", "system", "regex", "variant2", "coroutine", "coroutine2",
		"filesystem",
	},
}

// DefaultAssignments moves headers whose physical location does not match
// the module that logically owns them.
func DefaultAssignments() map[string]string {
	return map[string]string{
		"boost/date_time/posix_time/time_serialize.hpp":   "date_time~serialize",
		"boost/date_time/gregorian/greg_serialize.hpp":    "date_time~serialize",
		"boost/dynamic_bitset/serialization.hpp":          "dynamic_bitset~serialize",
		"boost/flyweight/serialize.hpp":                   "flyweight~serialize",
		"boost/flyweight/detail/archive_constructed.hpp":  "flyweight~serialize",
		"boost/flyweight/detail/serialization_helper.hpp": "flyweight~serialize",
		"boost/units/io.hpp":                              "units~io",
		"boost/uuid/uuid_serialize.hpp":                   "uuid~serialize",
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ExcludedModules merges exclude_modules with the modules of every preset.
func (c *Config) ExcludedModules() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(c.Filter.ExcludeModules))
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range c.Filter.ExcludeModules {
		add(name)
	}
	for _, preset := range c.Filter.Presets {
		for _, name := range Presets[preset] {
			add(name)
		}
	}
	sort.Strings(out)
	return out
}
