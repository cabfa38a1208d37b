package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DescriptorParser extracts the modules a build descriptor links against.
// References take the form <Namespace>::<target>; a target a_b names the
// module a~b when a_b itself is not a module.
type DescriptorParser struct {
	ref *regexp.Regexp
	sep string
}

// NewDescriptorParser builds a parser for link targets in namespace.
func NewDescriptorParser(namespace, sep string) *DescriptorParser {
	return &DescriptorParser{
		ref: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(namespace) + `::([A-Za-z0-9_]+)`),
		sep: sep,
	}
}

// Read returns the referenced module names in first-seen order. Targets that
// match no known module are returned unchanged so the map builder can report
// them.
func (p *DescriptorParser) Read(r io.Reader, known map[string]string) ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, m := range p.ref.FindAllStringSubmatch(line, -1) {
			name := p.resolve(m[1], known)
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadFile reads the descriptor at path.
func (p *DescriptorParser) ReadFile(path string, known map[string]string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	refs, err := p.Read(f, known)
	if err != nil {
		return nil, fmt.Errorf("read build descriptor %s: %w", path, err)
	}
	return refs, nil
}

func (p *DescriptorParser) resolve(target string, known map[string]string) string {
	if _, ok := known[target]; ok {
		return target
	}
	if p.sep != "" {
		nested := strings.ReplaceAll(target, "_", p.sep)
		if _, ok := known[nested]; ok {
			return nested
		}
	}
	return target
}
