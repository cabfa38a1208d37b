package graph

import (
	coreerrors "libdeps/internal/core/errors"
)

// DescriptorRow is one line of the missing build descriptor summary.
type DescriptorRow struct {
	Name string
	// RevDeps counts all transitive dependents.
	RevDeps int
	// RevDepsWithout counts transitive dependents that also lack a descriptor.
	RevDepsWithout int
	// Blocked is BlockCount for the module.
	Blocked int
}

// BlockCount counts the transitive dependents for which m is the only
// dependency still lacking a build descriptor. Modules that have a descriptor
// block nothing.
func (c *Collection) BlockCount(m *Module) int {
	if m.HasBuildDescriptor {
		return 0
	}
	blocked := 0
	for rev := range m.AllRevDeps {
		missing := 0
		for dep := range c.modules[rev].AllDeps {
			if !c.modules[dep].HasBuildDescriptor {
				missing++
			}
		}
		if missing == 1 {
			blocked++
		}
	}
	return blocked
}

// MissingDescriptors returns the rows for every module without a build
// descriptor, ordered by descending reverse dependency count.
func (c *Collection) MissingDescriptors() []DescriptorRow {
	rows := make([]DescriptorRow, 0)
	for _, m := range c.SortedByRevDeps() {
		if m.HasBuildDescriptor {
			continue
		}
		without := 0
		for rev := range m.AllRevDeps {
			if !c.modules[rev].HasBuildDescriptor {
				without++
			}
		}
		rows = append(rows, DescriptorRow{
			Name:           m.Name,
			RevDeps:        len(m.AllRevDeps),
			RevDepsWithout: without,
			Blocked:        c.BlockCount(m),
		})
	}
	return rows
}

// SetHasBuildDescriptor changes one module's flag and re-propagates coverage.
// The graph structure is left untouched.
func (c *Collection) SetHasBuildDescriptor(name string, has bool) error {
	m, ok := c.Module(name)
	if !ok {
		return coreerrors.Newf(coreerrors.CodeUnknownModule, "module %q is not part of the graph", name)
	}
	m.HasBuildDescriptor = has
	c.updateCoverage()
	return nil
}

// ToggleBuildDescriptor flips one module's flag and returns the new value.
func (c *Collection) ToggleBuildDescriptor(name string) (bool, error) {
	m, ok := c.Module(name)
	if !ok {
		return false, coreerrors.Newf(coreerrors.CodeUnknownModule, "module %q is not part of the graph", name)
	}
	has := !m.HasBuildDescriptor
	return has, c.SetHasBuildDescriptor(name, has)
}

// RefreshBuildDescriptors re-derives every flag through hasDescriptor.
func (c *Collection) RefreshBuildDescriptors(hasDescriptor func(name string) bool) {
	for _, m := range c.modules {
		m.HasBuildDescriptor = hasDescriptor(m.Name)
	}
	c.updateCoverage()
}
