package graph

import (
	"sort"
	"strings"
)

// DependencyGraph maps a node name (module or file) to the names it depends on.
// It is the interchange format between the map builders and the analysis engine
// and never contains self edges.
type DependencyGraph map[string][]string

// ID is the dense index of a module inside its Collection.
type ID int

// Module is one analyzed node. The dependency sets hold IDs into the owning
// Collection; a Module is only meaningful together with that Collection.
type Module struct {
	ID                 ID
	Name               string
	HasBuildDescriptor bool

	Deps       IDSet
	RevDeps    IDSet
	AllDeps    IDSet
	AllRevDeps IDSet

	// Level is -1 until levels are assigned.
	Level                   int
	DepsHaveBuildDescriptor bool
}

// Collection owns every Module of one analysis pass. IDs are assigned in name
// order, so iterating by ID is iterating by name.
type Collection struct {
	modules []*Module
	byName  map[string]ID
}

// BuildOptions controls how a DependencyGraph becomes a Collection.
type BuildOptions struct {
	// HasBuildDescriptor reports whether the named module carries a build
	// descriptor. Nil means no module has one.
	HasBuildDescriptor func(name string) bool
	// Exclude lists module names dropped from the collection together with
	// every edge touching them.
	Exclude []string
}

// Build materializes deps into a fully analyzed Collection. Every key of deps
// becomes a module unless excluded; edges to names that are not keys are
// ignored.
func Build(deps DependencyGraph, opts BuildOptions) *Collection {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		if excluded[name] {
			continue
		}
		names = append(names, name)
	}

	c := newCollection(names, opts.HasBuildDescriptor)
	for _, m := range c.modules {
		for _, dep := range deps[m.Name] {
			target, ok := c.byName[dep]
			if !ok {
				continue
			}
			c.link(m.ID, target)
		}
	}
	c.updateDerived()
	return c
}

func newCollection(names []string, hasDescriptor func(string) bool) *Collection {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	c := &Collection{
		modules: make([]*Module, 0, len(sorted)),
		byName:  make(map[string]ID, len(sorted)),
	}
	for _, name := range sorted {
		if _, dup := c.byName[name]; dup {
			continue
		}
		id := ID(len(c.modules))
		m := &Module{
			ID:         id,
			Name:       name,
			Deps:       NewIDSet(),
			RevDeps:    NewIDSet(),
			AllDeps:    NewIDSet(),
			AllRevDeps: NewIDSet(),
			Level:      -1,
		}
		if hasDescriptor != nil {
			m.HasBuildDescriptor = hasDescriptor(name)
		}
		c.modules = append(c.modules, m)
		c.byName[name] = id
	}
	return c
}

// link inserts the direct edge from -> to and its mirror. Self edges are dropped.
func (c *Collection) link(from, to ID) {
	if from == to {
		return
	}
	c.modules[from].Deps.Add(to)
	c.modules[to].RevDeps.Add(from)
}

// Len returns the number of modules.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.modules)
}

// Modules returns all modules ordered by name.
func (c *Collection) Modules() []*Module {
	if c == nil {
		return nil
	}
	return append([]*Module(nil), c.modules...)
}

// Module looks up a module by name.
func (c *Collection) Module(name string) (*Module, bool) {
	if c == nil {
		return nil, false
	}
	id, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.modules[id], true
}

// ByID returns the module with the given id.
func (c *Collection) ByID(id ID) *Module {
	return c.modules[id]
}

// Names translates a set of ids to sorted module names.
func (c *Collection) Names(set IDSet) []string {
	names := make([]string, 0, len(set))
	for id := range set {
		names = append(names, c.modules[id].Name)
	}
	sort.Strings(names)
	return names
}

// EdgeCount returns the number of direct dependency edges.
func (c *Collection) EdgeCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, m := range c.modules {
		total += len(m.Deps)
	}
	return total
}

// MaxLevel returns the highest assigned level, or -1 for an empty collection.
func (c *Collection) MaxLevel() int {
	max := -1
	if c == nil {
		return max
	}
	for _, m := range c.modules {
		if m.Level > max {
			max = m.Level
		}
	}
	return max
}

// DependencyGraph exports the direct edges in interchange format.
func (c *Collection) DependencyGraph() DependencyGraph {
	out := make(DependencyGraph, c.Len())
	if c == nil {
		return out
	}
	for _, m := range c.modules {
		out[m.Name] = c.Names(m.Deps)
	}
	return out
}

// Clone returns an independent deep copy.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := &Collection{
		modules: make([]*Module, len(c.modules)),
		byName:  make(map[string]ID, len(c.byName)),
	}
	for i, m := range c.modules {
		cp := *m
		cp.Deps = m.Deps.Clone()
		cp.RevDeps = m.RevDeps.Clone()
		cp.AllDeps = m.AllDeps.Clone()
		cp.AllRevDeps = m.AllRevDeps.Clone()
		out.modules[i] = &cp
	}
	for name, id := range c.byName {
		out.byName[name] = id
	}
	return out
}

// SortedByRevDeps returns modules ordered by descending transitive reverse
// dependency count, ties broken by name.
func (c *Collection) SortedByRevDeps() []*Module {
	list := c.Modules()
	sort.SliceStable(list, func(i, j int) bool {
		if len(list[i].AllRevDeps) != len(list[j].AllRevDeps) {
			return len(list[i].AllRevDeps) > len(list[j].AllRevDeps)
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// String renders "name -> dep, dep" lines, mostly for debugging and tests.
func (c *Collection) String() string {
	var b strings.Builder
	for _, m := range c.Modules() {
		b.WriteString(m.Name)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(c.Names(m.Deps), ", "))
		b.WriteString("\n")
	}
	return b.String()
}
