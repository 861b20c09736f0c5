package alloc

import (
	"math"
	"sort"

	"github.com/funny-falcon/vecalloc/elem"
	"github.com/funny-falcon/vecalloc/mem"
)

// SizeClassConfig describes a size-class table: linear classes for small
// sizes, geometric classes up to MediumMax, page multiples beyond.
type SizeClassConfig struct {
	SmallIncrement uintptr
	SmallMax       uintptr
	MediumMax      uintptr
	GrowthFactor   float64
	PageSize       uintptr
}

// DefaultSizeClasses is the table used by Pooled.
var DefaultSizeClasses = NewSizeClasses(SizeClassConfig{
	SmallIncrement: 16,
	SmallMax:       512,
	MediumMax:      32 << 10,
	GrowthFactor:   1.25,
	PageSize:       4096,
})

// SizeClasses rounds byte sizes up to class boundaries.
type SizeClasses struct {
	config SizeClassConfig
	bounds []uintptr
}

func NewSizeClasses(config SizeClassConfig) *SizeClasses {
	c := &SizeClasses{config: config}
	for size := config.SmallIncrement; size <= config.SmallMax; size += config.SmallIncrement {
		c.bounds = append(c.bounds, size)
	}
	size := config.SmallMax
	for size < config.MediumMax {
		next := uintptr(math.Ceil(float64(size) * config.GrowthFactor))
		next = alignUp(next, config.SmallIncrement)
		if next <= size {
			next = size + config.SmallIncrement
		}
		c.bounds = append(c.bounds, next)
		size = next
	}
	return c
}

// Quantize returns the smallest class that holds size bytes.
func (c *SizeClasses) Quantize(size, _ uintptr) uintptr {
	if n := len(c.bounds); n > 0 && size <= c.bounds[n-1] {
		i := sort.Search(n, func(i int) bool { return c.bounds[i] >= size })
		return c.bounds[i]
	}
	return alignUp(size, c.config.PageSize)
}

// NumClasses is the number of bounded classes.
func (c *SizeClasses) NumClasses() int { return len(c.bounds) }

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) / align * align
}

// Pooled is Heap with byte sizes rounded up to DefaultSizeClasses, so the
// capacity of an array uses everything a bucketed allocator would hand out.
type Pooled[T any] struct{}

func (Pooled[T]) Allocate(n int) mem.Block { return allocate[T](n, DefaultSizeClasses.Quantize) }

func (Pooled[T]) Deallocate(b mem.Block) { mem.Free(b) }

func (Pooled[T]) IsTransferable(mem.Block) bool { return true }

func (Pooled[T]) InitialCapacity() int { return 0 }

func (Pooled[T]) CalculateSlackGrow(newCount, oldCapacity int) int {
	tr := elem.TraitsOf[T]()
	return SlackGrow(newCount, oldCapacity, tr.Size, tr.Align, DefaultSizeClasses.Quantize)
}

func (Pooled[T]) CalculateSlackShrink(newCount, oldCapacity int) int {
	tr := elem.TraitsOf[T]()
	return SlackShrink(newCount, oldCapacity, tr.Size, tr.Align, DefaultSizeClasses.Quantize)
}

func (Pooled[T]) CalculateSlackReserve(count int) int {
	tr := elem.TraitsOf[T]()
	return SlackReserve(count, tr.Size, tr.Align, DefaultSizeClasses.Quantize)
}
