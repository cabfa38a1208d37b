package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	coreerrors "libdeps/internal/core/errors"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// Options selects which parts of each module are scanned.
type Options struct {
	TrackSources          bool
	TrackTests            bool
	TrackBuildDescriptors bool
	// Workers bounds the number of modules scanned at once. Zero means
	// one per CPU.
	Workers      int
	ExcludeDirs  []string
	ExcludeFiles []string
}

// Scanner inventories the files of every module in a collection.
type Scanner struct {
	layout      Layout
	opts        Options
	includes    *IncludeParser
	descriptors *DescriptorParser
	dirGlobs    []glob.Glob
	fileGlobs   []glob.Glob
}

// NewScanner validates the exclude patterns and returns a ready Scanner.
func NewScanner(layout Layout, opts Options) (*Scanner, error) {
	dirGlobs, err := compileGlobs(opts.ExcludeDirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(opts.ExcludeFiles, "exclude file")
	if err != nil {
		return nil, err
	}
	return &Scanner{
		layout:      layout,
		opts:        opts,
		includes:    NewIncludeParser(layout.Namespace),
		descriptors: NewDescriptorParser(layout.Namespace, layout.Separator),
		dirGlobs:    dirGlobs,
		fileGlobs:   fileGlobs,
	}, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, coreerrors.Wrap(err, coreerrors.CodeConfiguration, fmt.Sprintf("invalid %s pattern %q", label, p))
		}
		out = append(out, g)
	}
	return out, nil
}

// Layout returns the layout the scanner walks.
func (s *Scanner) Layout() Layout {
	return s.layout
}

// Scan discovers all modules and scans them in parallel. Each worker fills
// its own slot; the merged result is sorted by module, then file name.
func (s *Scanner) Scan(ctx context.Context) ([]ModuleFiles, error) {
	modules, err := FindModules(s.layout.LibsPath(), s.layout.SublibsMarker, s.layout.Separator)
	if err != nil {
		return nil, coreerrors.AddContext(
			coreerrors.Wrap(err, coreerrors.CodeScanFailed, "module discovery failed"),
			coreerrors.CtxPath, s.layout.LibsPath())
	}

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]ModuleFiles, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mf, err := s.scanModule(name, modules[name], modules)
			if err != nil {
				return coreerrors.AddContext(
					coreerrors.Wrap(err, coreerrors.CodeScanFailed, "module scan failed"),
					coreerrors.CtxModule, name)
			}
			results[i] = mf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortModules(results)
	slog.Debug("scan finished", "modules", len(results), "root", s.layout.Root)
	return results, nil
}

func (s *Scanner) scanModule(name, dir string, known map[string]string) (ModuleFiles, error) {
	mf := ModuleFiles{Module: name}
	rel := s.layout.ModuleRelPath(name)

	headers, err := s.scanTree(filepath.Join(dir, "include"), "", Header, name)
	if err != nil {
		return mf, err
	}
	mf.Files = append(mf.Files, headers...)

	if s.opts.TrackSources {
		sources, err := s.scanTree(filepath.Join(dir, "src"), rel+"/src/", Source, name)
		if err != nil {
			return mf, err
		}
		mf.Files = append(mf.Files, sources...)
	}

	if s.opts.TrackTests {
		tests, err := s.scanTree(filepath.Join(dir, "test"), rel+"/test/", Test, name)
		if err != nil {
			return mf, err
		}
		mf.Files = append(mf.Files, tests...)
	}

	if s.opts.TrackBuildDescriptors && s.layout.BuildDescriptor != "" {
		path := filepath.Join(dir, s.layout.BuildDescriptor)
		if exists(path) {
			refs, err := s.descriptors.ReadFile(path, known)
			if err != nil {
				slog.Warn("skipping unreadable build descriptor", "module", name, "path", path, "error", err)
			} else {
				mf.Files = append(mf.Files, File{
					Name:     rel + "/" + s.layout.BuildDescriptor,
					Includes: refs,
					Module:   name,
					Category: BuildDescriptor,
				})
			}
		}
	}
	return mf, nil
}

// scanTree reads every regular file below dir. File names are the path
// relative to dir, with slashes, prefixed by namePrefix. A missing dir is
// not an error.
func (s *Scanner) scanTree(dir, namePrefix string, cat Category, module string) ([]File, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil
	}

	files := make([]File, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		if d.IsDir() {
			if path != dir && matchAny(s.dirGlobs, base) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || matchAny(s.fileGlobs, base) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		includes, err := s.includes.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable file", "module", module, "path", path, "error", err)
			return nil
		}
		files = append(files, File{
			Name:     namePrefix + filepath.ToSlash(rel),
			Includes: includes,
			Module:   module,
			Category: cat,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
