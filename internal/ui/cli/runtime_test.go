package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"libdeps/internal/core/config"
)

func writeCollection(t *testing.T, withMarker bool) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"libs/a/include/boost/a.hpp": "#pragma once\n",
		"libs/a/CMakeLists.txt":      "add_library(boost_a INTERFACE)\n",
		"libs/b/include/boost/b.hpp": "#include <boost/a.hpp>\n",
		"libs/c/include/boost/c.hpp": "#include <boost/b.hpp>\n#include <boost/nowhere.hpp>\n",
		"libs/d/include/boost/d.hpp": "#include <boost/e.hpp>\n",
		"libs/e/include/boost/e.hpp": "#include <boost/d.hpp>\n",
	}
	if withMarker {
		files["Jamroot"] = ""
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("LIBDEPS_ROOT", "")
	t.Setenv("BOOST_ROOT", "")
}

func TestParseOptions_RecordsSetFlags(t *testing.T) {
	opts, err := parseOptions([]string{"--root", "/tmp/boost", "--tests", "--exclude", "a, b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.set["root"] || !opts.set["tests"] || opts.set["sources"] {
		t.Fatalf("unexpected set flags: %v", opts.set)
	}
	if !opts.sources {
		t.Fatal("expected sources to default to true")
	}
	if opts.historyLimit != 20 {
		t.Fatalf("expected default history limit 20, got %d", opts.historyLimit)
	}
}

func TestParseOptions_RejectsPositionalArgs(t *testing.T) {
	if _, err := parseOptions([]string{"extra"}); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestApplyFlagOverrides_FilesRequiresRootModule(t *testing.T) {
	err := applyFlagOverrides(cliOptions{files: true}, config.Default())
	if err == nil || !strings.Contains(err.Error(), "--files requires --root-module") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyFlagOverrides_HistoryJSONRequiresHistory(t *testing.T) {
	err := applyFlagOverrides(cliOptions{historyJSON: "trend.json"}, config.Default())
	if err == nil || !strings.Contains(err.Error(), "requires --history") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyFlagOverrides_RejectsUIWithModule(t *testing.T) {
	err := applyFlagOverrides(cliOptions{ui: true, module: "a"}, config.Default())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyFlagOverrides_CopiesSetFlags(t *testing.T) {
	opts, err := parseOptions([]string{
		"--root", "/tmp/boost", "--root-module", "asio", "--sources=false",
		"--build-descriptors", "--exclude", "a,b", "--preset", " CPP11 ",
		"--history", "--watch", "--metrics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := config.Default()
	if err := applyFlagOverrides(opts, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Root != "/tmp/boost" || cfg.RootModule != "asio" {
		t.Fatalf("unexpected root settings: %q %q", cfg.Root, cfg.RootModule)
	}
	if cfg.Scan.SourcesTracked() {
		t.Fatal("expected sources to be disabled")
	}
	if !cfg.Scan.TrackBuildDescriptors {
		t.Fatal("expected build descriptor tracking")
	}
	if len(cfg.Filter.ExcludeModules) != 2 || cfg.Filter.Presets[0] != "cpp11" {
		t.Fatalf("unexpected filter: %+v", cfg.Filter)
	}
	if !cfg.DB.Enabled || !cfg.Watch.Enabled || !cfg.Metrics.Enabled || cfg.Tracing.Enabled {
		t.Fatalf("unexpected toggles: db=%v watch=%v metrics=%v tracing=%v",
			cfg.DB.Enabled, cfg.Watch.Enabled, cfg.Metrics.Enabled, cfg.Tracing.Enabled)
	}
}

func TestApplyFlagOverrides_RejectsUnknownPreset(t *testing.T) {
	opts, err := parseOptions([]string{"--preset", "cpp98"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := applyFlagOverrides(opts, config.Default()); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestParseSince(t *testing.T) {
	got, err := parseSince("2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}
	if zero, err := parseSince(" "); err != nil || !zero.IsZero() {
		t.Fatalf("expected zero time, got %v (%v)", zero, err)
	}
	if _, err := parseSince("yesterday"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--version"}, &out, &out); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "libdeps v"+versionString) {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRun_MissingMarkerExitsOne(t *testing.T) {
	isolateEnv(t)
	root := writeCollection(t, false)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--root", root}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Jamroot not found") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestRun_NoRootExitsOne(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRun_PrintsSummaryAndCycles(t *testing.T) {
	isolateEnv(t)
	root := writeCollection(t, true)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--root", root}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"Total Rev Dep cnt / without build descriptor / blocked / name",
		"Modules without a build descriptor: 4",
		"Detected Cycles:",
		"\nd e\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr.String(), "boost/nowhere.hpp") {
		t.Fatalf("expected unresolved include on stderr, got %q", stderr.String())
	}
}

func TestRun_ModuleDetails(t *testing.T) {
	isolateEnv(t)
	root := writeCollection(t, true)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--root", root, "--module", "b"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "b") || strings.Contains(stdout.String(), "Detected Cycles") {
		t.Fatalf("unexpected module output:\n%s", stdout.String())
	}

	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"--root", root, "--module", "zzz"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1 for unknown module, got %d", code)
	}
}

func TestRun_UnknownRootModuleExitsOne(t *testing.T) {
	isolateEnv(t)
	root := writeCollection(t, true)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--root", root, "--root-module", "nope"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRun_HistoryWritesTrend(t *testing.T) {
	isolateEnv(t)
	root := writeCollection(t, true)
	jsonPath := filepath.Join(t.TempDir(), "trend", "runs.json")

	var stdout, stderr bytes.Buffer
	args := []string{"--root", root, "--history", "--history-json", jsonPath}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Coverage trend (1 runs):") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("expected trend json: %v", err)
	}
	if !strings.Contains(string(data), `"module_count": 5`) {
		t.Fatalf("unexpected trend json: %s", data)
	}
}
