package graph

import (
	"sort"
	"strings"
)

// Cycles reports every set of mutually reachable modules exactly once, each
// as a sorted name list. The result is ordered lexicographically.
func (c *Collection) Cycles() [][]string {
	if c == nil {
		return nil
	}

	seen := make(map[string]bool)
	cycles := make([][]string, 0)
	for _, m := range c.modules {
		members := m.AllDeps.Intersect(m.AllRevDeps)
		if len(members) == 0 {
			continue
		}
		members.Add(m.ID)

		names := c.Names(members)
		key := strings.Join(names, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		cycles = append(cycles, names)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return lessNames(cycles[i], cycles[j])
	})
	return cycles
}

// InCycle reports whether the module shares a cycle with any other module.
func (c *Collection) InCycle(m *Module) bool {
	for dep := range m.AllDeps {
		if m.AllRevDeps.Has(dep) {
			return true
		}
	}
	return false
}

func lessNames(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
