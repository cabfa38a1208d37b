package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	coreerrors "libdeps/internal/core/errors"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, coreerrors.AddContext(
			coreerrors.Wrap(err, coreerrors.CodeConfiguration, "invalid config file"),
			coreerrors.CtxPath, path)
	}

	applyDefaults(&cfg)
	normalize(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, coreerrors.AddContext(
			coreerrors.Wrap(err, coreerrors.CodeConfiguration, "invalid config"),
			coreerrors.CtxPath, path)
	}
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	setDefault(&cfg.LibsDir, "libs")
	setDefault(&cfg.MarkerFile, "Jamroot")
	setDefault(&cfg.Namespace, "boost")
	setDefault(&cfg.ModuleSeparator, "~")
	setDefault(&cfg.SublibsMarker, "sublibs")
	setDefault(&cfg.BuildDescriptor, "CMakeLists.txt")

	if cfg.Assignments == nil {
		cfg.Assignments = DefaultAssignments()
	}

	if cfg.DB.BusyTimeout <= 0 {
		cfg.DB.BusyTimeout = 5 * time.Second
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MinInterval == 0 {
		cfg.Watch.MinInterval = 2 * time.Second
	}
	setDefault(&cfg.Output.MarkdownMarker, "graph")
	setDefault(&cfg.Metrics.Address, "127.0.0.1:9464")
	setDefault(&cfg.Tracing.Endpoint, "localhost:4317")
	setDefault(&cfg.Tracing.ServiceName, "libdeps")
}

func setDefault(target *string, value string) {
	if strings.TrimSpace(*target) == "" {
		*target = value
	}
}

func normalize(cfg *Config) {
	cfg.Root = strings.TrimSpace(cfg.Root)
	cfg.RootModule = strings.TrimSpace(cfg.RootModule)
	cfg.Namespace = strings.Trim(strings.TrimSpace(cfg.Namespace), "/")
	cfg.LibsDir = strings.TrimSpace(cfg.LibsDir)

	presets := make([]string, 0, len(cfg.Filter.Presets))
	for _, p := range cfg.Filter.Presets {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			presets = append(presets, p)
		}
	}
	cfg.Filter.Presets = presets

	modules := make([]string, 0, len(cfg.Filter.ExcludeModules))
	for _, m := range cfg.Filter.ExcludeModules {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}
	cfg.Filter.ExcludeModules = modules
}

// Revalidate normalizes and validates cfg again after flags or environment
// variables changed it.
func Revalidate(cfg *Config) error {
	normalize(cfg)
	if err := validate(cfg); err != nil {
		return coreerrors.Wrap(err, coreerrors.CodeConfiguration, "invalid config")
	}
	return nil
}
