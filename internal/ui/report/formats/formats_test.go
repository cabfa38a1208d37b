package formats

import (
	"strings"
	"testing"

	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"
)

func cyclicCollection() *graph.Collection {
	return graph.Build(graph.DependencyGraph{
		"a": {"b"},
		"b": {"a", "c"},
		"c": nil,
	}, graph.BuildOptions{
		HasBuildDescriptor: func(name string) bool { return name == "c" },
	})
}

func TestDOTGenerator(t *testing.T) {
	c := cyclicCollection()
	dot, err := NewDOTGenerator(c).Generate(c.Cycles())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"digraph dependencies",
		"\"a\" -> \"b\" [color=\"red\", penwidth=3.0, label=\"CYCLE\"]",
		"\"b\" -> \"c\" [color=\"forestgreen\"]",
		"{ rank=same; \"c\"; }",
		"{ rank=same; \"a\"; \"b\"; }",
		"\"c\" [label=\"c\\n(level 0, 0 deps, 2 rev deps)\", style=\"rounded\"",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, "\"a\" [label=\"a\\n(level 1, 2 deps, 1 rev deps)\", style=\"rounded,dashed,filled\"") {
		t.Errorf("expected a to be dashed and filled as a cycle member\n%s", dot)
	}
}

func TestDOTGenerator_NilCollection(t *testing.T) {
	if _, err := NewDOTGenerator(nil).Generate(nil); err == nil {
		t.Fatal("expected error for nil collection")
	}
}

func TestTSVGenerator(t *testing.T) {
	c := cyclicCollection()
	gen := NewTSVGenerator(c)

	edges, err := gen.Generate()
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(edges), "\n")
	expected := []string{
		"From\tTo\tFromLevel\tToLevel",
		"a\tb\t1\t1",
		"b\ta\t1\t1",
		"b\tc\t1\t0",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("unexpected edges TSV:\n%s", edges)
	}

	modules, err := gen.GenerateModules()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(modules, "c\t0\t0\t1\t0\t2\ttrue\ttrue\t0\tfalse\n") {
		t.Errorf("unexpected module row for c:\n%s", modules)
	}
	if !strings.Contains(modules, "a\t1\t1\t1\t2\t1\tfalse\tfalse\t") {
		t.Errorf("unexpected module row for a:\n%s", modules)
	}

	unresolved, err := gen.GenerateUnresolved([]depmap.Unresolved{{File: "boost/a.hpp", Target: "boost/missing.hpp"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(unresolved, "unresolved_include\tboost/a.hpp\tboost/missing.hpp") {
		t.Errorf("unexpected unresolved TSV:\n%s", unresolved)
	}
}

func TestMermaidGenerator(t *testing.T) {
	c := cyclicCollection()
	out, err := NewMermaidGenerator(c).Generate(c.Cycles())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"flowchart BT",
		"subgraph level_0[\"Level 0\"]",
		"subgraph level_1[\"Level 1\"]",
		"a -->|CYCLE| b",
		"b -->|CYCLE| a",
		"b --> c",
		"class a,b missingNode;",
		"class a,b cycleNode;",
		"linkStyle 0,1 stroke:#cc0000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("mermaid output missing %q\n%s", want, out)
		}
	}
}
