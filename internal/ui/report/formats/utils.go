package formats

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"libdeps/internal/engine/graph"
)

func moduleLabel(m *graph.Module) string {
	return fmt.Sprintf("%s\\n(level %d, %d deps, %d rev deps)", m.Name, m.Level, len(m.AllDeps), len(m.AllRevDeps))
}

func sanitizeID(module string) string {
	if module == "" {
		return "m"
	}
	var b strings.Builder
	for _, r := range module {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	first := rune(out[0])
	if unicode.IsDigit(first) {
		return "m_" + out
	}
	return out
}

func makeIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizeID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// cycleIndex maps each cycle member to the position of its cycle. An edge
// belongs to a cycle when both ends map to the same index.
func cycleIndex(cycles [][]string) map[string]int {
	out := make(map[string]int)
	for i, cycle := range cycles {
		for _, name := range cycle {
			out[name] = i
		}
	}
	return out
}

func isCycleEdge(idx map[string]int, from, to string) bool {
	a, okA := idx[from]
	b, okB := idx[to]
	return okA && okB && a == b
}

// byLevel groups module names by level; the outer slice is ordered by level.
func byLevel(c *graph.Collection) [][]*graph.Module {
	levels := make(map[int][]*graph.Module)
	for _, m := range c.Modules() {
		levels[m.Level] = append(levels[m.Level], m)
	}
	keys := make([]int, 0, len(levels))
	for level := range levels {
		keys = append(keys, level)
	}
	sort.Ints(keys)
	out := make([][]*graph.Module, 0, len(keys))
	for _, level := range keys {
		out = append(out, levels[level])
	}
	return out
}

func joinInts(v []int) string {
	parts := make([]string, 0, len(v))
	for _, n := range v {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ",")
}
