package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"libdeps/internal/shared/util"
)

func blockMarkers(name string) (string, string) {
	return fmt.Sprintf("<!-- libdeps:%s:start -->", name), fmt.Sprintf("<!-- libdeps:%s:end -->", name)
}

// UpsertBlock sets the body of the named libdeps block in content. Content
// without the block gets it appended. Repeated or reversed markers are an
// error so a hand-edited document is never silently truncated.
func UpsertBlock(content, name, body string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("markdown marker must not be empty")
	}

	nl := "\n"
	if strings.Contains(content, "\r\n") {
		nl = "\r\n"
	}
	body = strings.ReplaceAll(strings.TrimRight(body, "\r\n"), "\n", nl)
	body = strings.ReplaceAll(body, "\r"+nl, nl)
	start, end := blockMarkers(name)

	starts, ends := strings.Count(content, start), strings.Count(content, end)
	if starts == 0 && ends == 0 {
		var b strings.Builder
		b.WriteString(content)
		if content != "" && !strings.HasSuffix(content, nl) {
			b.WriteString(nl)
		}
		b.WriteString(start + nl + body + nl + end + nl)
		return b.String(), nil
	}
	if starts != 1 || ends != 1 {
		return "", fmt.Errorf("markdown block %q must have exactly one start and one end marker", name)
	}

	from := strings.Index(content, start) + len(start)
	to := strings.Index(content, end)
	if to < from {
		return "", fmt.Errorf("markdown block %q ends before it starts", name)
	}
	return content[:from] + nl + body + nl + content[to:], nil
}

// InjectDiagram writes diagram into the named block of the Markdown file at
// path, creating the file when it does not exist.
func InjectDiagram(path, name, diagram string) error {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read markdown file %q: %w", path, err)
	}

	next, err := UpsertBlock(string(content), name, diagram)
	if err != nil {
		return err
	}
	if next == string(content) {
		return nil
	}
	if err := util.WriteFileWithDirs(path, []byte(next), 0o644); err != nil {
		return fmt.Errorf("write markdown file %q: %w", path, err)
	}
	return nil
}
