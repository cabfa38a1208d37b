package app

import (
	"fmt"
	"strings"

	"libdeps/internal/shared/util"
	"libdeps/internal/ui/report"
)

// GenerateOutputs writes every export configured under [output]. Empty paths
// are skipped.
func (a *App) GenerateOutputs(r *Result) error {
	out := a.Config.Output

	if path := strings.TrimSpace(out.DOT); path != "" {
		dot, err := report.NewDOTGenerator(r.Collection).Generate(r.Cycles)
		if err != nil {
			return fmt.Errorf("generate DOT output: %w", err)
		}
		if err := writeArtifact(path, dot); err != nil {
			return fmt.Errorf("write DOT output %q: %w", path, err)
		}
	}

	if path := strings.TrimSpace(out.TSV); path != "" {
		tsvGen := report.NewTSVGenerator(r.Collection)
		edges, err := tsvGen.Generate()
		if err != nil {
			return fmt.Errorf("generate TSV output: %w", err)
		}
		modules, err := tsvGen.GenerateModules()
		if err != nil {
			return fmt.Errorf("generate TSV module rows: %w", err)
		}
		tsv := edges + "\n" + modules
		if len(r.Unresolved) > 0 {
			unresolved, err := tsvGen.GenerateUnresolved(r.Unresolved)
			if err != nil {
				return fmt.Errorf("generate TSV unresolved rows: %w", err)
			}
			tsv += "\n" + unresolved
		}
		if err := writeArtifact(path, tsv); err != nil {
			return fmt.Errorf("write TSV output %q: %w", path, err)
		}
	}

	mermaidPath := strings.TrimSpace(out.Mermaid)
	markdownPath := strings.TrimSpace(out.Markdown)
	if mermaidPath == "" && markdownPath == "" {
		return nil
	}
	mermaid, err := report.NewMermaidGenerator(r.Collection).Generate(r.Cycles)
	if err != nil {
		return fmt.Errorf("generate mermaid output: %w", err)
	}
	if mermaidPath != "" {
		if err := writeArtifact(mermaidPath, mermaid); err != nil {
			return fmt.Errorf("write mermaid output %q: %w", mermaidPath, err)
		}
	}
	if markdownPath != "" {
		block := "```mermaid\n" + mermaid + "```"
		if err := report.InjectDiagram(markdownPath, out.MarkdownMarker, block); err != nil {
			return fmt.Errorf("inject mermaid into %q: %w", markdownPath, err)
		}
	}
	return nil
}

func writeArtifact(path, content string) error {
	return util.WriteFileWithDirs(path, []byte(content), 0o644)
}
