package array

import "github.com/funny-falcon/vecalloc/elem"

// StableErase removes n elements starting at index, keeping the order of the
// rest. With allowShrink the policy may then release slack.
func (a *Array[T, P, PP]) StableErase(index, n int, allowShrink bool) {
	a.checkRange(index, n)
	if n == 0 {
		return
	}
	c := a.count
	s := a.slots()
	elem.MoveAssign(s[index:c-n], s[index+n:c])
	a.dropTail(n, allowShrink)
}

// Erase removes n elements starting at index by moving the last elements of
// the array into the gap. It touches at most n elements besides the erased
// ones, but does not keep order.
func (a *Array[T, P, PP]) Erase(index, n int, allowShrink bool) {
	a.checkRange(index, n)
	if n == 0 {
		return
	}
	c := a.count
	m := min(n, c-index-n)
	s := a.slots()
	elem.MoveAssign(s[index:index+m], s[c-m:c])
	a.dropTail(n, allowShrink)
}

// StableEraseAt is StableErase over [first, last). It returns the position
// now holding the element that followed the range.
func (a *Array[T, P, PP]) StableEraseAt(first, last Iterator, allowShrink bool) Iterator {
	a.checkIteratorRange(first, last)
	a.StableErase(first.index, last.index-first.index, allowShrink)
	return a.IteratorAt(first.index)
}

// EraseAt is Erase over [first, last).
func (a *Array[T, P, PP]) EraseAt(first, last Iterator, allowShrink bool) Iterator {
	a.checkIteratorRange(first, last)
	a.Erase(first.index, last.index-first.index, allowShrink)
	return a.IteratorAt(first.index)
}

// Pop removes the last element and returns it.
func (a *Array[T, P, PP]) Pop(allowShrink bool) T {
	a.checkNotEmpty()
	var v T
	elem.MoveConstructOne(&v, &a.slots()[a.count-1])
	a.dropTail(1, allowShrink)
	return v
}

// dropTail destructs the last n slots, which hold moved-from or erased
// elements.
func (a *Array[T, P, PP]) dropTail(n int, allowShrink bool) {
	c := a.count
	elem.Destruct(a.slots()[c-n : c])
	a.count = c - n
	if allowShrink {
		a.shrinkIfBeneficial()
	}
}
