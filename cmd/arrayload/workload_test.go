package main

import (
	"errors"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/funny-falcon/vecalloc/mem"
)

const sample = `
policy: pooled
arrays: 3
repeat: 2
seed: 5
steps:
  - {op: push, count: 3000}
  - {op: append, count: 50}
  - {op: insert, count: 20}
  - {op: erase, count: 700, shrink: true}
  - {op: erase, count: 700, stable: true}
  - {op: pop, count: 10}
  - {op: reserve, count: 100}
  - {op: resize, count: 1500, shrink: true}
  - {op: clone}
  - {op: move}
  - {op: assign}
  - {op: shrink}
  - {op: clear, count: 8}
  - {op: push, count: 40}
`

func TestParseWorkload(t *testing.T) {
	w, err := ParseWorkload([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "pooled", w.Policy)
	assert.Equal(t, 3, w.Arrays)
	assert.Len(t, w.Steps, 14)
	assert.Equal(t, Step{Op: "erase", Count: 700, Stable: true}, w.Steps[4])

	w, err = ParseWorkload([]byte("steps: [{op: push, count: 1}]"))
	require.NoError(t, err)
	assert.Equal(t, "heap", w.Policy)
	assert.Equal(t, 1, w.Repeat)
}

func TestParseWorkloadErrors(t *testing.T) {
	for _, tc := range []struct {
		doc  string
		want error
	}{
		{"policy: stack", errUnknownPolicy},
		{"steps: [{op: sort}]", errUnknownOp},
		{"steps: [{op: push, count: -1}]", errBadCount},
		{"arrays: 0", errBadCount},
	} {
		_, err := ParseWorkload([]byte(tc.doc))
		assert.True(t, errors.Is(err, tc.want), "%q: %v", tc.doc, err)
	}

	_, err := ParseWorkload([]byte("polcy: heap"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestRunPolicies(t *testing.T) {
	log := zaptest.NewLogger(t)
	var checksum int64
	for i, policy := range []string{"heap", "pooled", "inline"} {
		w, err := ParseWorkload([]byte(sample))
		require.NoError(t, err)
		w.Policy = policy

		before := mem.Outstanding()
		res, err := w.Run(log)
		require.NoError(t, err)
		assert.Equal(t, before, mem.Outstanding(), policy)
		assert.Equal(t, policy, res.Policy)
		assert.Equal(t, 2*14*3, res.Ops)
		assert.Equal(t, 3*40, res.Elements)
		assert.GreaterOrEqual(t, res.Capacity, res.Elements)
		if i == 0 {
			checksum = res.Checksum
		}
		assert.Equal(t, checksum, res.Checksum, "policies see the same values")
	}
}

func TestDefaultWorkload(t *testing.T) {
	w := DefaultWorkload
	before := mem.Outstanding()
	_, err := w.Run(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, before, mem.Outstanding())
}

func TestServer(t *testing.T) {
	s := &server{
		log:      zaptest.NewLogger(t),
		workload: &Workload{Policy: "heap", Arrays: 1, Repeat: 1, Steps: []Step{{Op: "push", Count: 10}}},
		metrics:  func(ctx *fasthttp.RequestCtx) { ctx.SetBodyString("metrics") },
	}
	do := func(method, path, body string) *fasthttp.RequestCtx {
		var ctx fasthttp.RequestCtx
		ctx.Request.Header.SetMethod(method)
		ctx.Request.SetRequestURI(path)
		ctx.Request.SetBodyString(body)
		s.handle(&ctx)
		return &ctx
	}

	ctx := do("GET", "/stats", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var st mem.Stats
	require.NoError(t, jsoniter.Unmarshal(ctx.Response.Body(), &st))

	ctx = do("GET", "/metrics", "")
	assert.Equal(t, "metrics", string(ctx.Response.Body()))

	ctx = do("POST", "/run", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var res Result
	require.NoError(t, jsoniter.Unmarshal(ctx.Response.Body(), &res))
	assert.Equal(t, 10, res.Elements)

	ctx = do("POST", "/run", "policy: inline\nsteps: [{op: push, count: 3}]")
	require.NoError(t, jsoniter.Unmarshal(ctx.Response.Body(), &res))
	assert.Equal(t, "inline", res.Policy)
	assert.Equal(t, 3, res.Elements)

	ctx = do("POST", "/run", "policy: nope")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = do("GET", "/run", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
