package formats

import (
	"fmt"
	"strings"

	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"
)

type TSVGenerator struct {
	collection *graph.Collection
}

func NewTSVGenerator(c *graph.Collection) *TSVGenerator {
	return &TSVGenerator{collection: c}
}

// Generate writes one row per direct edge.
func (t *TSVGenerator) Generate() (string, error) {
	if t.collection == nil {
		return "", fmt.Errorf("tsv: collection is required")
	}
	var buf strings.Builder

	buf.WriteString("From\tTo\tFromLevel\tToLevel\n")
	for _, m := range t.collection.Modules() {
		for _, id := range m.Deps.Sorted() {
			dep := t.collection.ByID(id)
			buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%d\n", m.Name, dep.Name, m.Level, dep.Level))
		}
	}
	return buf.String(), nil
}

// GenerateModules writes one row per module with its coverage figures.
func (t *TSVGenerator) GenerateModules() (string, error) {
	if t.collection == nil {
		return "", fmt.Errorf("tsv: collection is required")
	}
	var buf strings.Builder

	buf.WriteString("Module\tLevel\tDeps\tRevDeps\tAllDeps\tAllRevDeps\tBuildDescriptor\tDepsHaveBuildDescriptor\tBlocked\tInCycle\n")
	for _, m := range t.collection.Modules() {
		buf.WriteString(fmt.Sprintf("%s\t%d\t%d\t%d\t%d\t%d\t%t\t%t\t%d\t%t\n",
			m.Name,
			m.Level,
			len(m.Deps),
			len(m.RevDeps),
			len(m.AllDeps),
			len(m.AllRevDeps),
			m.HasBuildDescriptor,
			m.DepsHaveBuildDescriptor,
			t.collection.BlockCount(m),
			t.collection.InCycle(m),
		))
	}
	return buf.String(), nil
}

func (t *TSVGenerator) GenerateUnresolved(rows []depmap.Unresolved) (string, error) {
	var buf strings.Builder

	buf.WriteString("Type\tFile\tTarget\n")
	for _, row := range rows {
		buf.WriteString(fmt.Sprintf("unresolved_include\t%s\t%s\n", row.File, row.Target))
	}
	return buf.String(), nil
}
