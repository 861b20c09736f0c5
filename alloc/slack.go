package alloc

import (
	"math"

	"github.com/funny-falcon/vecalloc/internal/check"
)

// QuantizeFunc rounds a byte size up to the size the underlying allocator
// would hand out anyway.
type QuantizeFunc func(size, align uintptr) uintptr

// Identity is the default QuantizeFunc.
func Identity(size, _ uintptr) uintptr { return size }

const (
	firstGrow    = 4
	constantGrow = 16

	shrinkSlackBytes    = 16 << 10
	shrinkSlackElements = 64
)

// SlackGrow is the amortised growth rule: the first growth from empty jumps
// to max(newCount, 4), later ones to newCount*11/8 + 16, quantized.
func SlackGrow(newCount, oldCapacity int, size, align uintptr, q QuantizeFunc) int {
	check.That(newCount > oldCapacity && oldCapacity >= 0, ErrCapacity,
		"grow %d -> %d", oldCapacity, newCount)
	size = max(size, 1)
	grow := uint64(firstGrow)
	switch {
	case oldCapacity != 0:
		grow = uint64(newCount) + 3*uint64(newCount)/8 + constantGrow
	case uint64(newCount) > grow:
		grow = uint64(newCount)
	}
	check.That(grow <= math.MaxInt/uint64(size), ErrCapacity,
		"%d elements of %d bytes", grow, size)
	res := int(q(uintptr(grow)*size, align) / size)
	check.That(res >= newCount, ErrCapacity, "grow %d -> %d gave %d", oldCapacity, newCount, res)
	return res
}

// SlackShrink releases slack only when it is large in both absolute and
// relative terms, so alternating pushes and pops near a threshold do not
// reallocate every time.
func SlackShrink(newCount, oldCapacity int, size, align uintptr, q QuantizeFunc) int {
	check.That(newCount < oldCapacity && newCount >= 0, ErrCapacity,
		"shrink %d -> %d", oldCapacity, newCount)
	size = max(size, 1)
	slack := oldCapacity - newCount
	tooManyBytes := uint64(slack)*uint64(size) >= shrinkSlackBytes
	tooManyElements := 3*newCount < 2*oldCapacity
	if !(tooManyBytes && tooManyElements && (slack > shrinkSlackElements || newCount == 0)) {
		return oldCapacity
	}
	if newCount == 0 {
		return 0
	}
	res := int(q(uintptr(newCount)*size, align) / size)
	check.That(res >= newCount, ErrCapacity, "shrink %d -> %d gave %d", oldCapacity, newCount, res)
	return min(res, oldCapacity)
}

// SlackReserve is the quantized capacity for exactly count elements.
func SlackReserve(count int, size, align uintptr, q QuantizeFunc) int {
	check.That(count >= 0, ErrCapacity, "reserve %d", count)
	if count == 0 {
		return 0
	}
	size = max(size, 1)
	check.That(uint64(count) <= math.MaxInt/uint64(size), ErrCapacity,
		"%d elements of %d bytes", count, size)
	res := int(q(uintptr(count)*size, align) / size)
	check.That(res >= count, ErrCapacity, "reserve %d gave %d", count, res)
	return res
}
