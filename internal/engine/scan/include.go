package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IncludeParser extracts namespaced include targets from source text.
type IncludeParser struct {
	prefix string
	// minLine is the length of the shortest directive that can name a
	// namespaced header, e.g. `#include <boost/a.h>`.
	minLine int
	// minTail is the shortest delimited target, e.g. `<boost/a.hpp>`.
	minTail int
}

// NewIncludeParser builds a parser accepting targets below namespace.
func NewIncludeParser(namespace string) *IncludeParser {
	return &IncludeParser{
		prefix:  namespace + "/",
		minLine: len("#include <") + len(namespace) + len("/a.h>"),
		minTail: len("<") + len(namespace) + len("/a.hpp>"),
	}
}

// ParseLine returns the include target of line when line is an include
// directive naming a path in the parser's namespace.
func (p *IncludeParser) ParseLine(line string) (string, bool) {
	if len(line) < p.minLine {
		return "", false
	}
	target, ok := includeTarget(line, p.minTail)
	if !ok || !strings.HasPrefix(target, p.prefix) {
		return "", false
	}
	return target, true
}

// includeTarget strips directive syntax and delimiters from line.
func includeTarget(line string, minTail int) (string, bool) {
	s := trimLeft(line)
	s, ok := strings.CutPrefix(s, "#")
	if !ok {
		return "", false
	}
	s, ok = strings.CutPrefix(trimLeft(s), "include")
	if !ok {
		return "", false
	}
	s = trimLeft(s)
	if len(s) < minTail {
		return "", false
	}

	var closing byte
	switch s[0] {
	case '<':
		closing = '>'
	case '"':
		closing = '"'
	default:
		return "", false
	}
	end := strings.IndexByte(s[1:], closing)
	if end < 0 {
		return "", false
	}
	return s[1 : end+1], true
}

func trimLeft(s string) string {
	return strings.TrimLeft(s, " \t")
}

// Read collects the include targets of every line of r in order. Duplicates
// are kept.
func (p *IncludeParser) Read(r io.Reader) ([]string, error) {
	targets := make([]string, 0)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if target, ok := p.ParseLine(sc.Text()); ok {
			targets = append(targets, target)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

// ReadFile collects the include targets of the file at path.
func (p *IncludeParser) ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	targets, err := p.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read includes from %s: %w", path, err)
	}
	return targets, nil
}
