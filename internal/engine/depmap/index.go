package depmap

import (
	"log/slog"
	"sort"

	"libdeps/internal/engine/graph"
	"libdeps/internal/engine/scan"
)

// Unresolved is an include target that matches no scanned file.
type Unresolved struct {
	File   string
	Target string
}

// Options are shared by all map builders.
type Options struct {
	// Exclude lists modules dropped from the output: their files contribute
	// no edges and edges into them are omitted. Their files still resolve, so
	// includes of excluded headers are not reported as unresolved.
	Exclude []string
}

func (o Options) excluded() map[string]bool {
	out := make(map[string]bool, len(o.Exclude))
	for _, name := range o.Exclude {
		out[name] = true
	}
	return out
}

// Result is a dependency map plus the diagnostics gathered while building it.
type Result struct {
	Graph      graph.DependencyGraph
	Unresolved []Unresolved
	// Files is the number of files that contributed to Graph.
	Files int
}

// FileIndex maps a file name to the module owning it.
type FileIndex map[string]string

// NewFileIndex indexes files by name. On a name collision the last file wins.
func NewFileIndex(files []scan.File) FileIndex {
	idx := make(FileIndex, len(files))
	for _, f := range files {
		idx[f.Name] = f.Module
	}
	return idx
}

// Module returns the owner of name.
func (idx FileIndex) Module(name string) (string, bool) {
	m, ok := idx[name]
	return m, ok
}

func reportUnresolved(list []Unresolved) {
	for _, u := range list {
		slog.Warn("unresolved include", "file", u.File, "target", u.Target)
	}
}

// toGraph converts per-module sets into sorted, self-free adjacency lists.
func toGraph(sets map[string]map[string]struct{}) graph.DependencyGraph {
	out := make(graph.DependencyGraph, len(sets))
	for name, deps := range sets {
		delete(deps, name)
		list := make([]string, 0, len(deps))
		for d := range deps {
			list = append(list, d)
		}
		sort.Strings(list)
		out[name] = list
	}
	return out
}

func addEdge(sets map[string]map[string]struct{}, from, to string) {
	set, ok := sets[from]
	if !ok {
		set = make(map[string]struct{})
		sets[from] = set
	}
	if to != "" {
		set[to] = struct{}{}
	}
}
