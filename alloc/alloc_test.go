package alloc_test

import (
	"errors"
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/vecalloc/alloc"
	"github.com/funny-falcon/vecalloc/mem"
)

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic with %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	f()
}

var (
	_ alloc.Policy[int] = alloc.Heap[int]{}
	_ alloc.Policy[int] = alloc.Pooled[int]{}
	_ alloc.Policy[int] = (*alloc.Inline[int, [4]int])(nil)
)

func TestSlackGrow(t *testing.T) {
	var p alloc.Heap[int64]
	assert.Equal(t, 4, p.CalculateSlackGrow(1, 0))
	assert.Equal(t, 4, p.CalculateSlackGrow(4, 0))
	assert.Equal(t, 5, p.CalculateSlackGrow(5, 0))
	assert.Equal(t, 22, p.CalculateSlackGrow(5, 4))
	assert.Equal(t, 100+37+16, p.CalculateSlackGrow(100, 99))

	requirePanicsWith(t, alloc.ErrCapacity, func() { p.CalculateSlackGrow(4, 4) })
	requirePanicsWith(t, alloc.ErrCapacity, func() { p.CalculateSlackGrow(3, 10) })
}

func TestSlackGrowQuantized(t *testing.T) {
	double := func(size, _ uintptr) uintptr { return size * 2 }
	assert.Equal(t, 8, alloc.SlackGrow(1, 0, 8, 8, double))
	assert.Equal(t, 44, alloc.SlackGrow(5, 4, 8, 8, double))
	assert.Equal(t, 6, alloc.SlackReserve(3, 8, 8, double))
}

func TestSlackShrinkHysteresis(t *testing.T) {
	var p alloc.Heap[int64]
	// large slack in bytes and in proportion
	assert.Equal(t, 100, p.CalculateSlackShrink(100, 10000))
	// under 16 KiB of slack
	assert.Equal(t, 3000, p.CalculateSlackShrink(1000, 3000))
	// more than two thirds still used
	assert.Equal(t, 10000, p.CalculateSlackShrink(9000, 10000))
	// becoming empty with enough slack bytes
	assert.Equal(t, 0, p.CalculateSlackShrink(0, 2100))
	// becoming empty, but the buffer is small
	assert.Equal(t, 100, p.CalculateSlackShrink(0, 100))

	var big alloc.Heap[[256]byte]
	assert.Equal(t, 100, big.CalculateSlackShrink(40, 100))
	assert.Equal(t, 30, big.CalculateSlackShrink(30, 100))
	// element delta must exceed 64
	assert.Equal(t, 100, big.CalculateSlackShrink(36, 100))
	assert.Equal(t, 35, big.CalculateSlackShrink(35, 100))

	requirePanicsWith(t, alloc.ErrCapacity, func() { p.CalculateSlackShrink(10, 10) })
}

func TestSlackReserve(t *testing.T) {
	var p alloc.Heap[int32]
	assert.Equal(t, 0, p.CalculateSlackReserve(0))
	assert.Equal(t, 13, p.CalculateSlackReserve(13))
	requirePanicsWith(t, alloc.ErrCapacity, func() { p.CalculateSlackReserve(-1) })
}

func TestHeapAllocate(t *testing.T) {
	var p alloc.Heap[int64]
	assert.True(t, p.Allocate(0).IsNil())

	b := p.Allocate(10)
	assert.False(t, b.Typed())
	assert.Equal(t, uintptr(80), b.Size())
	assert.Zero(t, uintptr(b.Pointer())%16)
	assert.True(t, p.IsTransferable(b))
	p.Deallocate(b)

	var ps alloc.Heap[string]
	b = ps.Allocate(3)
	assert.True(t, b.Typed())
	ps.Deallocate(b)
}

func TestSizeClasses(t *testing.T) {
	c := alloc.DefaultSizeClasses
	assert.Equal(t, uintptr(16), c.Quantize(1, 8))
	assert.Equal(t, uintptr(32), c.Quantize(17, 8))
	assert.Equal(t, uintptr(512), c.Quantize(512, 8))
	assert.Equal(t, uintptr(640), c.Quantize(513, 8))
	assert.Equal(t, uintptr(40960), c.Quantize(40000, 8))
	assert.Greater(t, c.NumClasses(), 32)

	rnd := rand.New(rand.NewSource(1))
	prev := uintptr(0)
	for size := uintptr(1); size < 1<<16; size += uintptr(rnd.Intn(97) + 1) {
		q := c.Quantize(size, 8)
		require.GreaterOrEqual(t, q, size)
		require.GreaterOrEqual(t, q, prev)
		prev = q
	}
}

func TestPooled(t *testing.T) {
	var p alloc.Pooled[int64]
	assert.Equal(t, 4, p.CalculateSlackReserve(3))
	assert.Equal(t, 4, p.CalculateSlackGrow(1, 0))
	assert.Equal(t, 100, p.CalculateSlackGrow(50, 40))
	b := p.Allocate(3)
	assert.Equal(t, uintptr(32), b.Size())
	p.Deallocate(b)
}

func TestInline(t *testing.T) {
	var p alloc.Inline[int64, [4]int64]
	assert.Equal(t, 4, p.InitialCapacity())
	assert.Equal(t, 4, p.CalculateSlackGrow(2, 0))
	assert.Equal(t, 22, p.CalculateSlackGrow(5, 4))
	assert.Equal(t, 4, p.CalculateSlackReserve(3))
	assert.Equal(t, 10, p.CalculateSlackReserve(10))
	assert.Equal(t, 4, p.CalculateSlackShrink(2, 22))

	in := p.Allocate(3)
	assert.True(t, in.Borrowed())
	assert.Equal(t, unsafe.Sizeof([4]int64{}), in.Size())
	assert.False(t, p.IsTransferable(in))
	p.Deallocate(in)

	before := mem.Outstanding()
	out := p.Allocate(5)
	assert.False(t, out.Borrowed())
	assert.True(t, p.IsTransferable(out))
	p.Deallocate(out)
	assert.Equal(t, before, mem.Outstanding())
}

func TestInlinePointerElements(t *testing.T) {
	var ok alloc.Inline[string, [2]string]
	assert.True(t, ok.Allocate(2).Borrowed())

	var untyped alloc.Inline[*int, [32]byte]
	requirePanicsWith(t, alloc.ErrBadInlineStorage, func() { untyped.Allocate(1) })

	var misaligned alloc.Inline[int64, [16]byte]
	requirePanicsWith(t, alloc.ErrBadInlineStorage, func() { misaligned.Allocate(1) })
}
