package report

import (
	"fmt"
	"io"
	"strings"

	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"
)

const banner = "##############################"

// WriteDescriptorSummary prints one "total/without/blocked<TAB>name" row per
// module lacking a build descriptor, most depended upon first, followed by
// the number of such modules.
func WriteDescriptorSummary(w io.Writer, c *graph.Collection) error {
	rows := c.MissingDescriptors()
	var b strings.Builder
	b.WriteString("Total Rev Dep cnt / without build descriptor / blocked / name\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%d/%d/%d\t%s\n", row.RevDeps, row.RevDepsWithout, row.Blocked, row.Name)
	}
	fmt.Fprintf(&b, "Modules without a build descriptor: %d\n", len(rows))
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCycles prints every cycle on its own line between two banners.
func WriteCycles(w io.Writer, cycles [][]string) error {
	var b strings.Builder
	b.WriteString("\n" + banner + "\n")
	b.WriteString("Detected Cycles:\n\n")
	for _, cycle := range cycles {
		b.WriteString(strings.Join(cycle, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n" + banner + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteUnresolved prints the resolution warnings of a map build.
func WriteUnresolved(w io.Writer, list []depmap.Unresolved) error {
	var b strings.Builder
	for _, u := range list {
		fmt.Fprintf(&b, "unknown file included from %s : %s\n", u.File, u.Target)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDrift prints modules whose build descriptor declares different
// dependencies than their files include.
func WriteDrift(w io.Writer, drift []depmap.Drift) error {
	var b strings.Builder
	for _, d := range drift {
		fmt.Fprintf(&b, "Dependency difference for module %s:\n", d.Module)
		fmt.Fprintf(&b, "FileDeps: %s\n", strings.Join(d.FileDeps, " "))
		fmt.Fprintf(&b, "DescriptorDeps: %s\n", strings.Join(d.DescriptorDeps, " "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteModule prints the dependency details of a single module.
func WriteModule(w io.Writer, c *graph.Collection, name string) error {
	m, ok := c.Module(name)
	if !ok {
		return fmt.Errorf("module %q not in collection", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Module:            %s\n", m.Name)
	fmt.Fprintf(&b, "Level:             %d\n", m.Level)
	fmt.Fprintf(&b, "Build descriptor:  %t\n", m.HasBuildDescriptor)
	fmt.Fprintf(&b, "Deps covered:      %t\n", m.DepsHaveBuildDescriptor)
	fmt.Fprintf(&b, "Blocked:           %d\n", c.BlockCount(m))
	fmt.Fprintf(&b, "Deps:              %s\n", strings.Join(c.Names(m.Deps), " "))
	fmt.Fprintf(&b, "Rev deps:          %s\n", strings.Join(c.Names(m.RevDeps), " "))
	fmt.Fprintf(&b, "All deps (%d):     %s\n", len(m.AllDeps), strings.Join(c.Names(m.AllDeps), " "))
	fmt.Fprintf(&b, "All rev deps (%d): %s\n", len(m.AllRevDeps), strings.Join(c.Names(m.AllRevDeps), " "))
	_, err := io.WriteString(w, b.String())
	return err
}
