package report

import (
	"libdeps/internal/engine/graph"
	"libdeps/internal/ui/report/formats"
)

type DOTGenerator = formats.DOTGenerator
type TSVGenerator = formats.TSVGenerator
type MermaidGenerator = formats.MermaidGenerator

func NewDOTGenerator(c *graph.Collection) *DOTGenerator {
	return formats.NewDOTGenerator(c)
}

func NewTSVGenerator(c *graph.Collection) *TSVGenerator {
	return formats.NewTSVGenerator(c)
}

func NewMermaidGenerator(c *graph.Collection) *MermaidGenerator {
	return formats.NewMermaidGenerator(c)
}
