package array

import "github.com/funny-falcon/vecalloc/elem"

// Resize sets the number of elements to n, constructing fresh ones or
// destructing the surplus. Growing uses the amortised growth rule; with
// allowShrink a smaller array may give slack back.
func (a *Array[T, P, PP]) Resize(n int, allowShrink bool) {
	checkCapacity(n >= 0, "resize to %d", n)
	switch c := a.count; {
	case n > c:
		if n > a.capacity {
			a.resizeTo(a.alloc().CalculateSlackGrow(n, a.capacity))
		}
		a.count = n
		elem.Construct(a.slots()[c:n])
	case n < c:
		a.dropTail(c-n, allowShrink)
	}
}

// Reserve makes room for n elements without over-allocating. It never
// shrinks.
func (a *Array[T, P, PP]) Reserve(n int) {
	if n <= a.capacity {
		return
	}
	a.resizeTo(a.alloc().CalculateSlackReserve(n))
}

// Shrink drops all slack the policy allows. A second call is a no-op.
func (a *Array[T, P, PP]) Shrink() {
	if newCap := a.alloc().CalculateSlackReserve(a.count); newCap < a.capacity {
		a.resizeTo(newCap)
	}
}

// Clear destructs every element and leaves room for exactly slack elements,
// reusing the buffer when it already has that capacity.
func (a *Array[T, P, PP]) Clear(slack int) {
	checkCapacity(slack >= 0, "clear with slack %d", slack)
	a.destructAll()
	a.resizeTo(a.alloc().CalculateSlackReserve(slack))
}

// Reset destructs every element and constructs newSize fresh ones, keeping
// the buffer if it is large enough.
func (a *Array[T, P, PP]) Reset(newSize int) {
	checkCapacity(newSize >= 0, "reset to %d", newSize)
	a.destructAll()
	a.Reserve(newSize)
	a.count = newSize
	elem.Construct(a.slots()[:newSize])
}
