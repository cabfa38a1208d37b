package formats

import (
	"fmt"
	"strings"

	"libdeps/internal/engine/graph"
)

type MermaidGenerator struct {
	collection *graph.Collection
}

func NewMermaidGenerator(c *graph.Collection) *MermaidGenerator {
	return &MermaidGenerator{collection: c}
}

// Generate renders a flowchart with one subgraph per level.
func (m *MermaidGenerator) Generate(cycles [][]string) (string, error) {
	if m.collection == nil {
		return "", fmt.Errorf("mermaid: collection is required")
	}
	var b strings.Builder
	b.WriteString("%%{init: {'theme': 'base', 'themeVariables': {'textColor': '#000000', 'primaryTextColor': '#000000', 'lineColor': '#333333'}, 'flowchart': {'nodeSpacing': 60, 'rankSpacing': 90, 'curve': 'basis'}}}%%\n")
	b.WriteString("flowchart BT\n")

	names := make([]string, 0, m.collection.Len())
	for _, mod := range m.collection.Modules() {
		names = append(names, mod.Name)
	}
	ids := makeIDs(names)
	inCycle := cycleIndex(cycles)

	for _, level := range byLevel(m.collection) {
		b.WriteString(fmt.Sprintf("  subgraph level_%d[\"Level %d\"]\n", level[0].Level, level[0].Level))
		for _, mod := range level {
			b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[mod.Name], escapeLabel(moduleLabel(mod))))
		}
		b.WriteString("  end\n")
	}

	missing := make([]string, 0)
	cycleNodes := make([]string, 0)
	for _, mod := range m.collection.Modules() {
		if !mod.HasBuildDescriptor {
			missing = append(missing, ids[mod.Name])
		}
		if _, ok := inCycle[mod.Name]; ok {
			cycleNodes = append(cycleNodes, ids[mod.Name])
		}
	}
	b.WriteString("\n")
	if len(missing) > 0 {
		b.WriteString("  classDef missingNode fill:#f7f7f7,stroke:#808080,stroke-dasharray:4 3,color:#000000;\n")
		b.WriteString(fmt.Sprintf("  class %s missingNode;\n", strings.Join(missing, ",")))
	}
	if len(cycleNodes) > 0 {
		b.WriteString("  classDef cycleNode fill:#ffecec,stroke:#cc0000,stroke-width:2px,color:#000000;\n")
		b.WriteString(fmt.Sprintf("  class %s cycleNode;\n", strings.Join(cycleNodes, ",")))
	}

	b.WriteString("\n")
	linkIndex := 0
	cycleLinks := make([]int, 0)
	for _, mod := range m.collection.Modules() {
		for _, dep := range m.collection.Names(mod.Deps) {
			label := ""
			if isCycleEdge(inCycle, mod.Name, dep) {
				label = "|CYCLE|"
				cycleLinks = append(cycleLinks, linkIndex)
			}
			b.WriteString(fmt.Sprintf("  %s -->%s %s\n", ids[mod.Name], label, ids[dep]))
			linkIndex++
		}
	}
	if len(cycleLinks) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  linkStyle %s stroke:#cc0000,stroke-width:3px;\n", joinInts(cycleLinks)))
	}
	return b.String(), nil
}
