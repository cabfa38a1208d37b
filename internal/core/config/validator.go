package config

import (
	"fmt"
	"sort"
	"strings"

	"libdeps/internal/shared/util"

	"github.com/gobwas/glob"
)

func validate(cfg *Config) error {
	validators := []func(*Config) error{
		validateVersion,
		validateLayout,
		validateScan,
		validateFilter,
		validateAssignments,
		validateDatabase,
		validateWatch,
	}
	for _, v := range validators {
		if err := v(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateLayout(cfg *Config) error {
	if cfg.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if strings.ContainsAny(cfg.Namespace, `/\ <>"`) {
		return fmt.Errorf("namespace %q must be a single path segment", cfg.Namespace)
	}
	if util.ContainsPathSeparator(cfg.ModuleSeparator) {
		return fmt.Errorf("module_separator %q must not contain a path separator", cfg.ModuleSeparator)
	}
	if strings.Contains(cfg.LibsDir, "..") {
		return fmt.Errorf("libs_dir %q must stay inside the root", cfg.LibsDir)
	}
	if util.ContainsPathSeparator(cfg.BuildDescriptor) {
		return fmt.Errorf("build_descriptor %q must be a file name", cfg.BuildDescriptor)
	}
	if util.ContainsPathSeparator(cfg.RootModule) {
		return fmt.Errorf("root_module %q must be a module name, not a path", cfg.RootModule)
	}
	return nil
}

func validateScan(cfg *Config) error {
	if cfg.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0, got %d", cfg.Scan.Workers)
	}
	for _, p := range cfg.Scan.ExcludeDirs {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("scan.exclude_dirs: invalid pattern %q: %w", p, err)
		}
	}
	for _, p := range cfg.Scan.ExcludeFiles {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("scan.exclude_files: invalid pattern %q: %w", p, err)
		}
	}
	return nil
}

func validateFilter(cfg *Config) error {
	for _, p := range cfg.Filter.Presets {
		if _, ok := Presets[p]; !ok {
			known := make([]string, 0, len(Presets))
			for name := range Presets {
				known = append(known, name)
			}
			sort.Strings(known)
			return fmt.Errorf("filter.presets: unknown preset %q (known: %s)", p, strings.Join(known, ", "))
		}
	}
	return nil
}

func validateAssignments(cfg *Config) error {
	for file, module := range cfg.Assignments {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("assignments: file name must not be empty")
		}
		if strings.TrimSpace(module) == "" {
			return fmt.Errorf("assignments: module for %q must not be empty", file)
		}
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	path := strings.TrimSpace(cfg.DB.Path)
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return fmt.Errorf("db.path %q must name a file", cfg.DB.Path)
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.MinInterval < 0 {
		return fmt.Errorf("watch.min_interval must not be negative")
	}
	return nil
}
