package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindModules lists the modules below dir. A sub-directory is a module when
// it contains an "include" entry. A sub-directory holding sublibsMarker is
// searched recursively and its children are named parent+sep+child; the
// parent still counts as a module on its own when it has an include entry.
func FindModules(dir, sublibsMarker, sep string) (map[string]string, error) {
	out := make(map[string]string)
	if err := findModules(dir, "", sublibsMarker, sep, out); err != nil {
		return nil, err
	}
	return out, nil
}

func findModules(dir, prefix, sublibsMarker, sep string, out map[string]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list modules in %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		name := prefix + entry.Name()

		if sublibsMarker != "" && exists(filepath.Join(path, sublibsMarker)) {
			if err := findModules(path, name+sep, sublibsMarker, sep, out); err != nil {
				return err
			}
		}
		if exists(filepath.Join(path, "include")) {
			out[name] = path
		}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
