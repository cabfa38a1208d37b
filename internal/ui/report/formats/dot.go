package formats

import (
	"fmt"
	"strings"

	"libdeps/internal/engine/graph"
)

type DOTGenerator struct {
	collection *graph.Collection
}

func NewDOTGenerator(c *graph.Collection) *DOTGenerator {
	return &DOTGenerator{collection: c}
}

// Generate renders the collection with modules of equal level on one rank.
// Cycle members and the edges between them are drawn in red; modules without
// a build descriptor are dashed.
func (d *DOTGenerator) Generate(cycles [][]string) (string, error) {
	if d.collection == nil {
		return "", fmt.Errorf("dot: collection is required")
	}
	var buf strings.Builder

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.5;\n")
	buf.WriteString("  overlap=false;\n\n")

	inCycle := cycleIndex(cycles)
	for _, level := range byLevel(d.collection) {
		buf.WriteString("  { rank=same;")
		for _, m := range level {
			buf.WriteString(fmt.Sprintf(" \"%s\";", m.Name))
		}
		buf.WriteString(" }\n")
		for _, m := range level {
			style := "rounded"
			if !m.HasBuildDescriptor {
				style = "rounded,dashed"
			}
			label := escapeLabel(moduleLabel(m))
			if _, ok := inCycle[m.Name]; ok {
				buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", style=\"%s,filled\", fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", m.Name, label, style))
				continue
			}
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", style=\"%s\", color=\"darkslategrey\"];\n", m.Name, label, style))
		}
	}
	buf.WriteString("\n")

	for _, m := range d.collection.Modules() {
		for _, dep := range d.collection.Names(m.Deps) {
			if isCycleEdge(inCycle, m.Name, dep) {
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", m.Name, dep))
				continue
			}
			buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"forestgreen\"];\n", m.Name, dep))
		}
	}

	buf.WriteString("\n  subgraph cluster_legend {\n")
	buf.WriteString("    label=\"Legend\";\n")
	buf.WriteString("    style=dashed;\n")
	buf.WriteString("    legend_module [label=\"Module\", style=\"rounded\"];\n")
	buf.WriteString("    legend_missing [label=\"No build descriptor\", style=\"rounded,dashed\"];\n")
	buf.WriteString("    legend_cycle [label=\"Cycle member\", fillcolor=\"mistyrose\", color=\"red\", style=\"rounded,filled\"];\n")
	buf.WriteString("  }\n")
	buf.WriteString("}\n")

	return buf.String(), nil
}
