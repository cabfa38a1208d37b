package scan

import (
	"os"
	"path/filepath"
	"strings"

	coreerrors "libdeps/internal/core/errors"
)

// Layout describes where modules and their well-known entries live inside a
// collection root.
type Layout struct {
	Root            string
	LibsDir         string
	MarkerFile      string
	Namespace       string
	Separator       string
	SublibsMarker   string
	BuildDescriptor string
}

// DefaultLayout returns the conventional layout rooted at root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:            root,
		LibsDir:         "libs",
		MarkerFile:      "Jamroot",
		Namespace:       "boost",
		Separator:       "~",
		SublibsMarker:   "sublibs",
		BuildDescriptor: "CMakeLists.txt",
	}
}

// LibsPath is the directory holding all modules.
func (l Layout) LibsPath() string {
	return filepath.Join(l.Root, l.LibsDir)
}

// ModuleRelPath turns a hierarchical module name into its path below LibsPath.
func (l Layout) ModuleRelPath(module string) string {
	if l.Separator == "" {
		return module
	}
	return strings.ReplaceAll(module, l.Separator, "/")
}

// ModulePath is the absolute directory of a module.
func (l Layout) ModulePath(module string) string {
	return filepath.Join(l.LibsPath(), filepath.FromSlash(l.ModuleRelPath(module)))
}

// HasBuildDescriptor reports whether the module directory holds a build
// descriptor file. Only existence is checked.
func (l Layout) HasBuildDescriptor(module string) bool {
	if l.BuildDescriptor == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(l.ModulePath(module), l.BuildDescriptor))
	return err == nil
}

// CheckMarker verifies that Root is a collection root.
func (l Layout) CheckMarker() error {
	if l.Root == "" {
		return coreerrors.New(coreerrors.CodeConfiguration, "no collection root selected")
	}
	info, err := os.Stat(l.Root)
	if err != nil || !info.IsDir() {
		return coreerrors.AddContext(
			coreerrors.New(coreerrors.CodeConfiguration, "collection root is not a directory"),
			coreerrors.CtxRoot, l.Root)
	}
	if l.MarkerFile == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Join(l.Root, l.MarkerFile)); err != nil {
		return coreerrors.AddContext(
			coreerrors.Newf(coreerrors.CodeConfiguration, "%s not found in collection root", l.MarkerFile),
			coreerrors.CtxRoot, l.Root)
	}
	return nil
}
