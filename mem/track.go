package mem

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/funny-falcon/vecalloc/internal/check"
)

// Stats is a snapshot of the heap instrumentation. All fields are zero when
// checks are compiled out.
type Stats struct {
	Blocks   int64  `json:"blocks"`   // outstanding blocks
	Bytes    int64  `json:"bytes"`    // outstanding requested bytes
	Mapped   int64  `json:"mapped"`   // outstanding native blocks
	Allocs   uint64 `json:"allocs"`   // total allocations
	Frees    uint64 `json:"frees"`    // total frees
	Reallocs uint64 `json:"reallocs"` // total reallocations
}

// tracker is the process-wide instrumentation state. Counters only need to
// settle to zero once every goroutine is done, so plain atomic adds suffice.
type tracker struct {
	once     sync.Once
	started  time.Time
	blocks   atomic.Int64
	bytes    atomic.Int64
	mapped   atomic.Int64
	allocs   atomic.Uint64
	frees    atomic.Uint64
	reallocs atomic.Uint64
}

var stats tracker

// init stamps the start of tracking at the first allocation. Readers of
// started call init first, which orders them after the write.
func (t *tracker) init() {
	t.once.Do(func() {
		t.started = time.Now()
		logger.Debug("heap tracking started")
	})
}

func (t *tracker) alloc(b Block) {
	if !check.Enabled {
		return
	}
	t.init()
	t.allocs.Add(1)
	t.blocks.Add(1)
	t.bytes.Add(int64(b.hdr.size))
	if b.hdr.mapped != nil {
		t.mapped.Add(1)
	}
}

func (t *tracker) free(b Block) {
	if !check.Enabled {
		return
	}
	t.frees.Add(1)
	t.blocks.Add(-1)
	t.bytes.Add(-int64(b.hdr.size))
	if b.hdr.mapped != nil {
		t.mapped.Add(-1)
	}
}

// realloc moves the accounting from the old header to the new block.
func (t *tracker) realloc(old *header, nb Block) {
	if !check.Enabled {
		return
	}
	t.reallocs.Add(1)
	t.bytes.Add(int64(nb.hdr.size) - int64(old.size))
	if old.mapped != nil {
		t.mapped.Add(-1)
	}
	if nb.hdr.mapped != nil {
		t.mapped.Add(1)
	}
}

// Outstanding returns the number of blocks allocated and not yet freed.
func Outstanding() int64 {
	return stats.blocks.Load()
}

// Snapshot returns the current instrumentation counters.
func Snapshot() Stats {
	return Stats{
		Blocks:   stats.blocks.Load(),
		Bytes:    stats.bytes.Load(),
		Mapped:   stats.mapped.Load(),
		Allocs:   stats.allocs.Load(),
		Frees:    stats.frees.Load(),
		Reallocs: stats.reallocs.Load(),
	}
}

// CheckLeaks is the teardown assertion: it logs a fatal leak diagnostic when
// any block is still outstanding. Call it once every user of the heap has
// finished.
func CheckLeaks() {
	if !check.Enabled {
		return
	}
	stats.init()
	if s := Snapshot(); s.Blocks != 0 {
		logger.Fatal("heap leak",
			zap.Duration("tracked", time.Since(stats.started)),
			zap.Int64("blocks", s.Blocks),
			zap.Int64("bytes", s.Bytes),
			zap.Int64("mapped", s.Mapped),
			zap.Uint64("allocs", s.Allocs),
			zap.Uint64("frees", s.Frees))
	}
}
