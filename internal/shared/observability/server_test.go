package observability

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_MetricsAndHealth(t *testing.T) {
	GraphModules.Set(42)

	s := NewServer("127.0.0.1:0", func(context.Context) map[string]any {
		return map[string]any{"modules": 42}
	})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "libdeps_graph_modules 42")

	resp, err = http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "up", status["status"])
	assert.Equal(t, float64(42), status["modules"])
}

func TestTracer_NoopWithoutProvider(t *testing.T) {
	_, span := Tracer.Start(context.Background(), "test")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}
