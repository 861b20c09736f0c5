package array

import (
	"slices"

	"github.com/funny-falcon/vecalloc/elem"
)

// Assign replaces the contents of a with copies of src's elements.
func (a *Array[T, P, PP]) Assign(src *Array[T, P, PP]) {
	if a == src {
		return
	}
	a.assign(src.Slice(), false)
}

// AssignSlice replaces the contents of a with copies of items.
func (a *Array[T, P, PP]) AssignSlice(items []T) {
	if a.overlaps(items) {
		items = slices.Clone(items)
	}
	a.assign(items, false)
}

// AssignMove replaces the contents of a with src's elements and leaves src
// empty. If src's buffer is transferable a takes it over; otherwise the
// elements are moved individually.
func (a *Array[T, P, PP]) AssignMove(src *Array[T, P, PP]) {
	if a == src {
		return
	}
	if src.alloc().IsTransferable(src.data) {
		a.Release()
		a.data, a.count, a.capacity = src.data, src.count, src.capacity
		src.resetEmpty()
		return
	}
	a.assign(src.Slice(), true)
	src.destructAll()
	src.alloc().Deallocate(src.data)
	src.resetEmpty()
}

// assign keeps the current buffer when the capacity decision allows it,
// assigning over the common prefix and then either destructing the surplus
// or constructing the rest. A capacity change tears everything down first.
// The count is raised before slots are filled, so after a panicking copy hook
// the slots not yet written hold zero values and are destructed with the rest.
func (a *Array[T, P, PP]) assign(src []T, move bool) {
	n, old := len(src), a.count
	newCap := a.capacity
	switch {
	case n > a.capacity:
		newCap = a.alloc().CalculateSlackReserve(n)
	case n < a.capacity:
		newCap = a.alloc().CalculateSlackShrink(n, a.capacity)
	}

	if newCap != a.capacity {
		a.Release()
		if newCap > 0 {
			a.data = a.alloc().Allocate(newCap)
			a.capacity = newCap
		}
		dst := a.slots()[:n]
		a.count = n
		if move {
			elem.MoveConstruct(dst, src)
		} else {
			elem.CopyConstruct(dst, src)
		}
		return
	}

	s := a.slots()
	common := min(old, n)
	if move {
		elem.MoveAssign(s[:common], src[:common])
	} else {
		elem.CopyAssign(s[:common], src[:common])
	}
	if n < old {
		elem.Destruct(s[n:old])
		a.count = n
		return
	}
	a.count = n
	if move {
		elem.MoveConstruct(s[old:n], src[old:])
	} else {
		elem.CopyConstruct(s[old:n], src[old:])
	}
}
