package graph

import (
	"sort"
	"strings"

	coreerrors "libdeps/internal/core/errors"
)

// Subgraph builds an independent collection over names. Build descriptor
// flags are copied, edges are kept only when both ends are in names, and all
// derived data is recomputed relative to the subgraph. Names missing from c
// are rejected.
func (c *Collection) Subgraph(names []string) (*Collection, error) {
	missing := make([]string, 0)
	for _, name := range names {
		if _, ok := c.Module(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, coreerrors.Newf(coreerrors.CodeUnknownModule,
			"subgraph requested for modules not in the graph: %s", strings.Join(missing, ", "))
	}

	sub := newCollection(names, func(name string) bool {
		m, _ := c.Module(name)
		return m.HasBuildDescriptor
	})
	for _, m := range sub.modules {
		full, _ := c.Module(m.Name)
		for dep := range full.Deps {
			target, ok := sub.byName[c.modules[dep].Name]
			if !ok {
				continue
			}
			sub.link(m.ID, target)
		}
	}
	sub.updateDerived()
	return sub, nil
}
