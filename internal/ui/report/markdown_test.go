package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertBlock_ReplacesExistingBlock(t *testing.T) {
	content := "# Deps\n<!-- libdeps:graph:start -->\nold\n<!-- libdeps:graph:end -->\ntail\n"

	out, err := UpsertBlock(content, "graph", "flowchart BT\n  a --> b\n")
	require.NoError(t, err)
	assert.Equal(t, "# Deps\n<!-- libdeps:graph:start -->\nflowchart BT\n  a --> b\n<!-- libdeps:graph:end -->\ntail\n", out)
}

func TestUpsertBlock_AppendsMissingBlock(t *testing.T) {
	out, err := UpsertBlock("# Deps", "graph", "a --> b")
	require.NoError(t, err)
	assert.Equal(t, "# Deps\n<!-- libdeps:graph:start -->\na --> b\n<!-- libdeps:graph:end -->\n", out)

	out, err = UpsertBlock("", "graph", "a --> b")
	require.NoError(t, err)
	assert.Equal(t, "<!-- libdeps:graph:start -->\na --> b\n<!-- libdeps:graph:end -->\n", out)
}

func TestUpsertBlock_Rejects(t *testing.T) {
	_, err := UpsertBlock("x", " ", "a")
	assert.Error(t, err)

	_, err = UpsertBlock("<!-- libdeps:graph:start -->\n", "graph", "a")
	assert.Error(t, err, "start without end")

	_, err = UpsertBlock("<!-- libdeps:graph:end -->\n<!-- libdeps:graph:start -->\n", "graph", "a")
	assert.Error(t, err, "reversed markers")
}

func TestUpsertBlock_KeepsCRLF(t *testing.T) {
	out, err := UpsertBlock("<!-- libdeps:graph:start -->\r\n<!-- libdeps:graph:end -->\r\n", "graph", "a\nb")
	require.NoError(t, err)
	assert.Equal(t, "<!-- libdeps:graph:start -->\r\na\r\nb\r\n<!-- libdeps:graph:end -->\r\n", out)
}

func TestInjectDiagram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "DEPS.md")

	require.NoError(t, InjectDiagram(path, "graph", "a --> b"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<!-- libdeps:graph:start -->\na --> b\n<!-- libdeps:graph:end -->\n", string(data))

	require.NoError(t, InjectDiagram(path, "graph", "c --> d"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<!-- libdeps:graph:start -->\nc --> d\n<!-- libdeps:graph:end -->\n", string(data))
}
