// Package memstats exports the heap instrumentation of package mem as
// Prometheus metrics and as a JSON document.
package memstats

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/funny-falcon/vecalloc/mem"
)

const namespace = "vecalloc_heap"

var jsonConfig = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

// Register adds the heap gauges and counters to reg. Every metric reads a
// fresh snapshot when it is collected.
func Register(reg prometheus.Registerer) {
	f := promauto.With(reg)
	gauge := func(name, help string, v func(mem.Stats) int64) {
		f.NewGaugeFunc(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help},
			func() float64 { return float64(v(mem.Snapshot())) })
	}
	counter := func(name, help string, v func(mem.Stats) uint64) {
		f.NewCounterFunc(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help},
			func() float64 { return float64(v(mem.Snapshot())) })
	}

	gauge("blocks", "Outstanding heap blocks", func(s mem.Stats) int64 { return s.Blocks })
	gauge("bytes", "Outstanding requested bytes", func(s mem.Stats) int64 { return s.Bytes })
	gauge("mapped_blocks", "Outstanding natively mapped blocks", func(s mem.Stats) int64 { return s.Mapped })
	counter("allocs_total", "Blocks allocated", func(s mem.Stats) uint64 { return s.Allocs })
	counter("frees_total", "Blocks freed", func(s mem.Stats) uint64 { return s.Frees })
	counter("reallocs_total", "Blocks reallocated", func(s mem.Stats) uint64 { return s.Reallocs })
}

// NewRegistry returns a registry holding the heap metrics and the Go
// runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	Register(reg)
	return reg
}

// Handler serves the metrics gathered from g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// AppendJSON appends s encoded as a JSON object to dst.
func AppendJSON(dst []byte, s mem.Stats) []byte {
	stream := jsonConfig.BorrowStream(nil)
	stream.WriteVal(s)
	dst = append(dst, stream.Buffer()...)
	jsonConfig.ReturnStream(stream)
	return dst
}

// Marshal encodes any value with the same configuration as AppendJSON.
func Marshal(v interface{}) ([]byte, error) {
	return jsonConfig.Marshal(v)
}
