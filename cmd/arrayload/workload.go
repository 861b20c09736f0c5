package main

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/funny-falcon/vecalloc/alloc"
	"github.com/funny-falcon/vecalloc/array"
	"github.com/funny-falcon/vecalloc/mem"
)

// Workload is a scripted sequence of array operations, read from YAML:
//
//	policy: pooled
//	arrays: 4
//	repeat: 10
//	seed: 1
//	steps:
//	  - {op: push, count: 10000}
//	  - {op: erase, count: 500, stable: true, shrink: true}
type Workload struct {
	Policy string `yaml:"policy"`
	Arrays int    `yaml:"arrays"`
	Repeat int    `yaml:"repeat"`
	Seed   int64  `yaml:"seed"`
	Steps  []Step `yaml:"steps"`
}

// Step is one operation applied to every array of the workload.
type Step struct {
	Op     string `yaml:"op"`
	Count  int    `yaml:"count"`
	Stable bool   `yaml:"stable"`
	Shrink bool   `yaml:"shrink"`
}

// Result summarises a workload run.
type Result struct {
	Policy   string        `json:"policy"`
	Ops      int           `json:"ops"`
	Elements int           `json:"elements"`
	Capacity int           `json:"capacity"`
	Checksum int64         `json:"checksum"`
	Elapsed  time.Duration `json:"elapsed"`
	Heap     mem.Stats     `json:"heap"`
}

var (
	errUnknownPolicy = errors.New("unknown policy")
	errUnknownOp     = errors.New("unknown op")
	errBadCount      = errors.New("bad count")
)

var ops = map[string]bool{
	"push": true, "append": true, "insert": true, "erase": true, "pop": true,
	"reserve": true, "resize": true, "shrink": true, "clear": true,
	"clone": true, "move": true, "assign": true,
}

// DefaultWorkload is run when no workload file is given.
var DefaultWorkload = Workload{
	Policy: "heap",
	Arrays: 4,
	Repeat: 3,
	Seed:   1,
	Steps: []Step{
		{Op: "push", Count: 20000},
		{Op: "insert", Count: 300},
		{Op: "erase", Count: 5000, Shrink: true},
		{Op: "erase", Count: 5000, Stable: true, Shrink: true},
		{Op: "clone"},
		{Op: "move"},
		{Op: "pop", Count: 1000, Shrink: true},
		{Op: "shrink"},
		{Op: "assign"},
		{Op: "clear", Count: 16},
	},
}

// LoadWorkload reads and validates a workload file.
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	return ParseWorkload(data)
}

// ParseWorkload decodes a YAML workload. Unknown fields are rejected.
func ParseWorkload(data []byte) (*Workload, error) {
	w := &Workload{Policy: "heap", Arrays: 1, Repeat: 1}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(w); err != nil {
		return nil, fmt.Errorf("parse workload: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workload) Validate() error {
	switch w.Policy {
	case "heap", "pooled", "inline":
	default:
		return fmt.Errorf("%w %q", errUnknownPolicy, w.Policy)
	}
	if w.Arrays < 1 || w.Repeat < 0 {
		return fmt.Errorf("%w: %d arrays, %d repeats", errBadCount, w.Arrays, w.Repeat)
	}
	for i, s := range w.Steps {
		if !ops[s.Op] {
			return fmt.Errorf("step %d: %w %q", i, errUnknownOp, s.Op)
		}
		if s.Count < 0 {
			return fmt.Errorf("step %d: %w %d", i, errBadCount, s.Count)
		}
	}
	return nil
}

// Run executes the workload with the policy it names.
func (w *Workload) Run(log *zap.Logger) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	var res Result
	switch w.Policy {
	case "heap":
		res = run[alloc.Heap[int64], *alloc.Heap[int64]](w, log)
	case "pooled":
		res = run[alloc.Pooled[int64], *alloc.Pooled[int64]](w, log)
	case "inline":
		res = run[alloc.Inline[int64, [16]int64], *alloc.Inline[int64, [16]int64]](w, log)
	}
	res.Policy = w.Policy
	res.Heap = mem.Snapshot()
	return res, nil
}

type runner[P any, PP alloc.Ptr[int64, P]] struct {
	rnd    *rand.Rand
	arrays []*array.Array[int64, P, PP]
	ops    int
}

func run[P any, PP alloc.Ptr[int64, P]](w *Workload, log *zap.Logger) Result {
	r := &runner[P, PP]{
		rnd:    rand.New(rand.NewSource(w.Seed)),
		arrays: make([]*array.Array[int64, P, PP], w.Arrays),
	}
	for i := range r.arrays {
		r.arrays[i] = new(array.Array[int64, P, PP])
	}
	defer func() {
		for _, a := range r.arrays {
			a.Release()
		}
	}()

	start := time.Now()
	for round := 0; round < w.Repeat; round++ {
		for _, s := range w.Steps {
			for i := range r.arrays {
				r.apply(i, s)
			}
		}
		log.Debug("round done", zap.Int("round", round), zap.Int("ops", r.ops))
	}

	res := Result{Ops: r.ops, Elapsed: time.Since(start)}
	for _, a := range r.arrays {
		res.Elements += a.Len()
		res.Capacity += a.Cap()
		for v := range a.Values() {
			res.Checksum += v
		}
	}
	return res
}

func (r *runner[P, PP]) apply(i int, s Step) {
	a := r.arrays[i]
	r.ops++
	switch s.Op {
	case "push":
		for j := 0; j < s.Count; j++ {
			a.Push(r.rnd.Int63n(1 << 20))
		}
	case "append":
		a.Append(r.values(s.Count)...)
	case "insert":
		for j := 0; j < s.Count; j++ {
			a.Insert(r.rnd.Intn(a.Len()+1), r.values(1+r.rnd.Intn(4))...)
		}
	case "erase":
		if a.IsEmpty() {
			return
		}
		at := r.rnd.Intn(a.Len())
		n := min(s.Count, a.Len()-at)
		if s.Stable {
			a.StableErase(at, n, s.Shrink)
		} else {
			a.Erase(at, n, s.Shrink)
		}
	case "pop":
		for j := 0; j < s.Count && !a.IsEmpty(); j++ {
			a.Pop(s.Shrink)
		}
	case "reserve":
		a.Reserve(a.Len() + s.Count)
	case "resize":
		a.Resize(s.Count, s.Shrink)
	case "shrink":
		a.Shrink()
	case "clear":
		a.Clear(s.Count)
	case "clone":
		c := a.Clone()
		c.Release()
	case "move":
		r.arrays[i] = a.Move()
		a.Release()
	case "assign":
		a.Assign(r.arrays[(i+1)%len(r.arrays)])
	}
}

func (r *runner[P, PP]) values(n int) []int64 {
	vs := make([]int64, n)
	for i := range vs {
		vs[i] = r.rnd.Int63n(1 << 20)
	}
	return vs
}
