package scan

import "sort"

// Category classifies a scanned file.
type Category int

const (
	// Unknown marks synthetic entries such as the root node of a file map.
	Unknown Category = iota
	Header
	Source
	Test
	BuildDescriptor
)

func (c Category) String() string {
	switch c {
	case Header:
		return "header"
	case Source:
		return "source"
	case Test:
		return "test"
	case BuildDescriptor:
		return "build-descriptor"
	default:
		return "unknown"
	}
}

// File is one scanned file. Includes holds namespaced include paths for
// headers, sources and tests, and referenced module names for build
// descriptors.
type File struct {
	Name     string
	Includes []string
	Module   string
	Category Category
}

// ModuleFiles groups the files of one module.
type ModuleFiles struct {
	Module string
	Files  []File
}

// Flatten concatenates the files of all modules in order.
func Flatten(mods []ModuleFiles) []File {
	total := 0
	for _, m := range mods {
		total += len(m.Files)
	}
	out := make([]File, 0, total)
	for _, m := range mods {
		out = append(out, m.Files...)
	}
	return out
}

// Only keeps the files of the given category.
func Only(files []File, cat Category) []File {
	out := make([]File, 0)
	for _, f := range files {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

// Without drops the files of the given category.
func Without(files []File, cat Category) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f.Category != cat {
			out = append(out, f)
		}
	}
	return out
}

func sortModules(mods []ModuleFiles) {
	sort.Slice(mods, func(i, j int) bool { return mods[i].Module < mods[j].Module })
	for i := range mods {
		files := mods[i].Files
		sort.SliceStable(files, func(a, b int) bool { return files[a].Name < files[b].Name })
	}
}
