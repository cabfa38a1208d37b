package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdeps/internal/engine/depmap"
	"libdeps/internal/engine/graph"
)

func sampleCollection() *graph.Collection {
	// core <- util <- app, core <- net <- app; only core has a descriptor.
	return graph.Build(graph.DependencyGraph{
		"app":  {"util", "net"},
		"util": {"core"},
		"net":  {"core"},
		"core": nil,
	}, graph.BuildOptions{
		HasBuildDescriptor: func(name string) bool { return name == "core" },
	})
}

func TestWriteDescriptorSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDescriptorSummary(&buf, sampleCollection()))

	expected := strings.Join([]string{
		"Total Rev Dep cnt / without build descriptor / blocked / name",
		"1/1/0\tnet",
		"1/1/0\tutil",
		"0/0/0\tapp",
		"Modules without a build descriptor: 3",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteDescriptorSummary_Blocked(t *testing.T) {
	c := graph.Build(graph.DependencyGraph{
		"top": {"mid"},
		"mid": {"low"},
		"low": nil,
	}, graph.BuildOptions{
		HasBuildDescriptor: func(name string) bool { return name == "low" },
	})

	var buf bytes.Buffer
	require.NoError(t, WriteDescriptorSummary(&buf, c))
	assert.Contains(t, buf.String(), "1/1/1\tmid\n")
	assert.Contains(t, buf.String(), "0/0/0\ttop\n")
	assert.Contains(t, buf.String(), "Modules without a build descriptor: 2\n")
}

func TestWriteCycles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCycles(&buf, [][]string{{"a", "b"}, {"x", "y", "z"}}))

	expected := "\n" + banner + "\nDetected Cycles:\n\na b\nx y z\n\n" + banner + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCycles_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCycles(&buf, nil))
	assert.Equal(t, "\n"+banner+"\nDetected Cycles:\n\n\n"+banner+"\n", buf.String())
}

func TestWriteUnresolved(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUnresolved(&buf, []depmap.Unresolved{
		{File: "boost/a.hpp", Target: "boost/gone.hpp"},
	}))
	assert.Equal(t, "unknown file included from boost/a.hpp : boost/gone.hpp\n", buf.String())
}

func TestWriteDrift(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDrift(&buf, []depmap.Drift{
		{Module: "app", FileDeps: []string{"core", "net"}, DescriptorDeps: []string{"core"}},
	}))
	assert.Equal(t, "Dependency difference for module app:\nFileDeps: core net\nDescriptorDeps: core\n", buf.String())
}

func TestWriteModule(t *testing.T) {
	c := sampleCollection()

	var buf bytes.Buffer
	require.NoError(t, WriteModule(&buf, c, "util"))
	out := buf.String()
	assert.Contains(t, out, "Module:            util\n")
	assert.Contains(t, out, "Level:             1\n")
	assert.Contains(t, out, "Deps:              core\n")
	assert.Contains(t, out, "All rev deps (1): app\n")

	assert.Error(t, WriteModule(&buf, c, "missing"))
}
