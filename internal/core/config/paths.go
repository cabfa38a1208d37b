package config

import (
	"os"
	"path/filepath"
	"strings"

	coreerrors "libdeps/internal/core/errors"
)

// RootEnvVars are consulted in order when no root is configured.
var RootEnvVars = []string{"LIBDEPS_ROOT", "BOOST_ROOT"}

// ResolveRoot returns the absolute collection root. An explicit root wins,
// then the first non-empty variable of RootEnvVars. The marker file is not
// checked here.
func ResolveRoot(cfg *Config) (string, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		for _, key := range RootEnvVars {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				root = v
				break
			}
		}
	}
	if root == "" {
		return "", coreerrors.Newf(coreerrors.CodeConfiguration,
			"no collection root configured; pass --root or set %s", strings.Join(RootEnvVars, " or "))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", coreerrors.Wrap(err, coreerrors.CodeConfiguration, "cannot resolve collection root")
	}
	return filepath.Clean(abs), nil
}

// StateDir is where logs and the history database live.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "libdeps")
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "libdeps")
	}
	return "."
}

// DefaultConfigPath prefers ./libdeps.toml, then the XDG config dir.
func DefaultConfigPath() string {
	local := "libdeps.toml"
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "libdeps", "libdeps.toml")
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "libdeps", "libdeps.toml")
	}
	return local
}

// DBPath resolves db.path against the state dir.
func DBPath(cfg *Config) string {
	return ResolveRelative(StateDir(), cfg.DB.Path, "history.db")
}

// ResolveRelative joins value onto base unless it is absolute. An empty
// value falls back to def.
func ResolveRelative(base, value, def string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		raw = def
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}
