package depmap

import (
	"sort"

	coreerrors "libdeps/internal/core/errors"
	"libdeps/internal/engine/graph"
	"libdeps/internal/engine/scan"
)

// ReachableFiles returns the names of all files reachable from the files of
// root through the file level include graph, root's own files included.
// Targets that match no file are not part of the result.
func ReachableFiles(files []scan.File, root string) (map[string]bool, error) {
	includes := make(map[string][]string, len(files))
	pending := make([]string, 0)
	for _, f := range files {
		includes[f.Name] = f.Includes
		if f.Module == root {
			pending = append(pending, f.Name)
		}
	}
	if len(pending) == 0 {
		return map[string]bool{}, coreerrors.AddContext(
			coreerrors.Newf(coreerrors.CodeRootModuleNotFound, "root module %q has no files", root),
			coreerrors.CtxModule, root)
	}

	visited := make(map[string]bool)
	for len(pending) > 0 {
		next := make([]string, 0)
		for _, name := range pending {
			if visited[name] {
				continue
			}
			inc, ok := includes[name]
			if !ok {
				continue
			}
			visited[name] = true
			for _, target := range inc {
				if !visited[target] {
					next = append(next, target)
				}
			}
		}
		pending = next
	}
	return visited, nil
}

// BuildFilteredModuleMap is BuildModuleMap restricted to the files reachable
// from root. A module reachable only through files outside that set is
// absent. When root owns no files the graph is empty and the error carries
// CodeRootModuleNotFound.
func BuildFilteredModuleMap(files []scan.File, root string, opts Options) (Result, error) {
	universe, err := ReachableFiles(files, root)
	if err != nil {
		return Result{Graph: graph.DependencyGraph{}}, err
	}

	reachable := make([]scan.File, 0, len(universe))
	for _, f := range files {
		if universe[f.Name] {
			reachable = append(reachable, f)
		}
	}
	return translate(reachable, NewFileIndex(files), universe, opts), nil
}

// BuildFilteredFileMap returns the file level graph of everything reachable
// from root. A synthetic node named root depends on each of root's own
// files.
func BuildFilteredFileMap(files []scan.File, root string, opts Options) (Result, error) {
	universe, err := ReachableFiles(files, root)
	if err != nil {
		return Result{Graph: graph.DependencyGraph{}}, err
	}

	excluded := opts.excluded()
	idx := NewFileIndex(files)
	out := make(graph.DependencyGraph, len(universe)+1)
	rootFiles := make([]string, 0)
	unresolved := make([]Unresolved, 0)
	count := 0

	for _, f := range files {
		if !universe[f.Name] || excluded[f.Module] {
			continue
		}
		count++
		if f.Module == root {
			rootFiles = append(rootFiles, f.Name)
		}

		seen := make(map[string]bool, len(f.Includes))
		deps := make([]string, 0, len(f.Includes))
		for _, target := range f.Includes {
			owner, ok := idx.Module(target)
			if !ok {
				unresolved = append(unresolved, Unresolved{File: f.Name, Target: target})
				continue
			}
			if target == f.Name || seen[target] || excluded[owner] {
				continue
			}
			seen[target] = true
			deps = append(deps, target)
		}
		out[f.Name] = deps
	}

	sort.Strings(rootFiles)
	out[root] = rootFiles

	reportUnresolved(unresolved)
	return Result{Graph: out, Unresolved: unresolved, Files: count}, nil
}
