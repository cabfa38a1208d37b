package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdeps/internal/data/history"
)

func sampleRuns() []history.Run {
	return []history.Run{
		{
			RunID:              "r1",
			Timestamp:          time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC),
			ModuleCount:        10,
			FileCount:          40,
			EdgeCount:          12,
			CycleCount:         1,
			MissingDescriptors: 5,
			MaxLevel:           3,
		},
		{
			RunID:              "r2",
			Timestamp:          time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
			RootModule:         "asio",
			ModuleCount:        10,
			FileCount:          40,
			EdgeCount:          12,
			MissingDescriptors: 4,
			MaxLevel:           3,
		},
	}
}

func TestWriteTrendTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrendTable(&buf, sampleRuns()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Timestamp"))
	assert.Contains(t, lines[1], "2026-02-12T00:00:00Z")
	assert.Contains(t, lines[1], "50.0%")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[1]), "-"))
	assert.Contains(t, lines[2], "asio")
	assert.Contains(t, lines[2], "60.0%")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "+10.0"))
}

func TestRenderTrendJSON(t *testing.T) {
	out, err := RenderTrendJSON(sampleRuns())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "r1", decoded[0]["run_id"])
	assert.NotContains(t, decoded[0], "root_module")
	assert.Equal(t, "asio", decoded[1]["root_module"])
}
