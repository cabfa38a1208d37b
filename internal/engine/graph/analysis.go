package graph

// updateDerived recomputes everything that follows from the direct edges.
func (c *Collection) updateDerived() {
	c.updateTransitive()
	c.updateLevels()
	c.updateCoverage()
}

// updateTransitive computes AllDeps as a fixed point of unions and mirrors
// it into AllRevDeps. Cycles can put a module into its own closure; that
// membership is removed once the module's fixed point is reached.
func (c *Collection) updateTransitive() {
	for _, m := range c.modules {
		m.AllDeps = m.Deps.Clone()
		m.AllRevDeps = m.RevDeps.Clone()
	}

	for _, m := range c.modules {
		for {
			before := len(m.AllDeps)
			reached := NewIDSet()
			for dep := range m.AllDeps {
				reached.Union(c.modules[dep].AllDeps)
			}
			m.AllDeps.Union(reached)
			if len(m.AllDeps) == before {
				break
			}
		}
		delete(m.AllDeps, m.ID)
	}

	for _, m := range c.modules {
		for dep := range m.AllDeps {
			c.modules[dep].AllRevDeps.Add(m.ID)
		}
	}
}

// updateLevels assigns each module one more than the highest level among its
// transitive dependencies, skipping dependencies it shares a cycle with.
// Leaves end up at level 0. At most len+1 relaxation rounds are needed.
func (c *Collection) updateLevels() {
	for _, m := range c.modules {
		m.Level = -1
	}

	for round := 0; round < len(c.modules)+1; round++ {
		changed := false
		for _, m := range c.modules {
			maxDepLevel := -1
			for dep := range m.AllDeps {
				d := c.modules[dep]
				if d.AllDeps.Has(m.ID) {
					continue
				}
				if d.Level > maxDepLevel {
					maxDepLevel = d.Level
				}
			}
			level := maxDepLevel + 1
			if level != m.Level {
				changed = true
				m.Level = level
			}
		}
		if !changed {
			break
		}
	}
}

// updateCoverage marks modules whose whole transitive closure has a build descriptor.
func (c *Collection) updateCoverage() {
	for _, m := range c.modules {
		c.updateModuleCoverage(m)
	}
}

func (c *Collection) updateModuleCoverage(m *Module) {
	covered := true
	for dep := range m.AllDeps {
		if !c.modules[dep].HasBuildDescriptor {
			covered = false
			break
		}
	}
	m.DepsHaveBuildDescriptor = covered
}
