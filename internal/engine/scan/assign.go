package scan

// ApplyAssignments moves every file named in table to the module it maps to.
// Target modules that were not discovered are created. The input is left
// untouched; the result is sorted by module, then file name.
func ApplyAssignments(mods []ModuleFiles, table map[string]string) []ModuleFiles {
	if len(table) == 0 {
		return mods
	}

	byModule := make(map[string]*ModuleFiles, len(mods))
	order := make([]string, 0, len(mods))
	group := func(name string) *ModuleFiles {
		if g, ok := byModule[name]; ok {
			return g
		}
		g := &ModuleFiles{Module: name}
		byModule[name] = g
		order = append(order, name)
		return g
	}

	for _, m := range mods {
		g := group(m.Module)
		for _, f := range m.Files {
			if target, ok := table[f.Name]; ok && target != m.Module {
				f.Module = target
				moved := group(target)
				moved.Files = append(moved.Files, f)
				continue
			}
			g.Files = append(g.Files, f)
		}
	}

	out := make([]ModuleFiles, 0, len(order))
	for _, name := range order {
		out = append(out, *byModule[name])
	}
	sortModules(out)
	return out
}
