package depmap

import (
	"libdeps/internal/engine/scan"
)

// BuildModuleMap resolves every include of every file to its owning module
// and aggregates the result per module. Targets that match no file are
// returned as Unresolved and dropped.
func BuildModuleMap(files []scan.File, opts Options) Result {
	idx := NewFileIndex(files)
	return translate(files, idx, nil, opts)
}

// translate builds the module map for files. When universe is non-nil only
// targets inside it are followed.
func translate(files []scan.File, idx FileIndex, universe map[string]bool, opts Options) Result {
	excluded := opts.excluded()
	sets := make(map[string]map[string]struct{})
	unresolved := make([]Unresolved, 0)
	count := 0

	for _, f := range files {
		if excluded[f.Module] {
			continue
		}
		count++
		addEdge(sets, f.Module, "")
		for _, target := range f.Includes {
			owner, ok := idx.Module(target)
			if !ok {
				unresolved = append(unresolved, Unresolved{File: f.Name, Target: target})
				continue
			}
			if universe != nil && !universe[target] {
				continue
			}
			if excluded[owner] {
				continue
			}
			addEdge(sets, f.Module, owner)
		}
	}

	reportUnresolved(unresolved)
	return Result{Graph: toGraph(sets), Unresolved: unresolved, Files: count}
}
