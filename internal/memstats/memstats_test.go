package memstats_test

import (
	"io"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/vecalloc/internal/check"
	"github.com/funny-falcon/vecalloc/internal/memstats"
	"github.com/funny-falcon/vecalloc/mem"
)

func TestAppendJSON(t *testing.T) {
	s := mem.Stats{Blocks: 2, Bytes: 128, Mapped: 1, Allocs: 5, Frees: 3, Reallocs: 1}
	out := memstats.AppendJSON([]byte("x"), s)
	require.Equal(t, byte('x'), out[0])

	var back mem.Stats
	require.NoError(t, jsoniter.Unmarshal(out[1:], &back))
	assert.Equal(t, s, back)
	assert.Contains(t, string(out), `"reallocs":1`)
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	memstats.Register(reg)

	b := mem.Allocate(100, 8)
	defer mem.Free(b)
	want := mem.Snapshot()

	families, err := reg.Gather()
	require.NoError(t, err)
	got := make(map[string]float64, len(families))
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		if g := m.GetGauge(); g != nil {
			got[mf.GetName()] = g.GetValue()
		} else {
			got[mf.GetName()] = m.GetCounter().GetValue()
		}
	}
	assert.Len(t, got, 6)
	assert.Equal(t, float64(want.Blocks), got["vecalloc_heap_blocks"])
	assert.Equal(t, float64(want.Bytes), got["vecalloc_heap_bytes"])
	assert.Contains(t, got, "vecalloc_heap_reallocs_total")
	if check.Enabled {
		assert.GreaterOrEqual(t, got["vecalloc_heap_allocs_total"], 1.0)
	}
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(memstats.Handler(memstats.NewRegistry()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vecalloc_heap_allocs_total")
	assert.Contains(t, string(body), "go_goroutines")
}
