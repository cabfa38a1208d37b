package depmap

import (
	"slices"
	"sort"

	"libdeps/internal/engine/graph"
	"libdeps/internal/engine/scan"
)

// Drift is a module whose build descriptor declares different dependencies
// than its files include.
type Drift struct {
	Module         string
	FileDeps       []string
	DescriptorDeps []string
}

// BuildDescriptorMap maps each module to the modules its build descriptor
// references. References to names outside known are reported as unresolved.
func BuildDescriptorMap(descriptors []scan.File, known graph.DependencyGraph, opts Options) Result {
	excluded := opts.excluded()
	sets := make(map[string]map[string]struct{})
	unresolved := make([]Unresolved, 0)
	count := 0

	for _, d := range descriptors {
		if d.Category != scan.BuildDescriptor || excluded[d.Module] {
			continue
		}
		count++
		addEdge(sets, d.Module, "")
		for _, ref := range d.Includes {
			if _, ok := known[ref]; !ok {
				unresolved = append(unresolved, Unresolved{File: d.Name, Target: ref})
				continue
			}
			if excluded[ref] {
				continue
			}
			addEdge(sets, d.Module, ref)
		}
	}

	reportUnresolved(unresolved)
	return Result{Graph: toGraph(sets), Unresolved: unresolved, Files: count}
}

// CompareDescriptors reports every module of fileDeps whose dependency list
// differs from the one in descriptorDeps. Modules whose descriptor declares
// no dependencies are skipped. The result is ordered by module name.
func CompareDescriptors(fileDeps, descriptorDeps graph.DependencyGraph) []Drift {
	names := make([]string, 0, len(fileDeps))
	for name := range fileDeps {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Drift, 0)
	for _, name := range names {
		declared := sortedCopy(descriptorDeps[name])
		if len(declared) == 0 {
			continue
		}
		actual := sortedCopy(fileDeps[name])
		if slices.Equal(actual, declared) {
			continue
		}
		out = append(out, Drift{Module: name, FileDeps: actual, DescriptorDeps: declared})
	}
	return out
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
