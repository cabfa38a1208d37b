package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPathPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		path     string
		prefix   string
		expected bool
	}{
		{name: "Exact", path: "libs/asio", prefix: "libs/asio", expected: true},
		{name: "Nested", path: "libs/asio/include/boost/asio.hpp", prefix: "libs/asio", expected: true},
		{name: "Neighbor", path: "libs/asio_ext", prefix: "libs/asio", expected: false},
		{name: "Shorter", path: "libs", prefix: "libs/asio", expected: false},
		{name: "MixedSeparators", path: `libs\asio\src`, prefix: "libs/asio", expected: true},
		{name: "Absolute", path: "/src/boost/libs/a", prefix: "/src/boost/libs", expected: true},
		{name: "Empty", path: "", prefix: "", expected: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, HasPathPrefix(tc.path, tc.prefix))
		})
	}
}

func TestSortedStringKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedStringKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, SortedStringKeys(map[string]bool{}))
}

func TestContainsPathSeparator(t *testing.T) {
	assert.True(t, ContainsPathSeparator("a/b"))
	assert.True(t, ContainsPathSeparator(`a\b`))
	assert.False(t, ContainsPathSeparator("a~b"))
}

func TestWriteFileWithDirs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "nested", "graph.dot")
	require.NoError(t, WriteFileWithDirs(target, []byte("digraph {}"), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "digraph {}", string(data))
}

func TestHeapAllocMB(t *testing.T) {
	assert.GreaterOrEqual(t, HeapAllocMB(), uint64(0))
}
