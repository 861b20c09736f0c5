package array

import (
	"iter"

	"github.com/funny-falcon/vecalloc/elem"
)

// InitN releases the current contents and constructs n fresh elements in a
// buffer of exactly the reserved capacity.
func (a *Array[T, P, PP]) InitN(n int) *Array[T, P, PP] {
	a.reinit(n)
	a.count = n
	elem.Construct(a.slots()[:n])
	return a
}

// InitFill releases the current contents and holds n copies of v.
func (a *Array[T, P, PP]) InitFill(n int, v T) *Array[T, P, PP] {
	a.reinit(n)
	a.count = n
	s, src := a.slots(), []T{v}
	for i := 0; i < n; i++ {
		elem.CopyConstruct(s[i:i+1], src)
	}
	return a
}

// InitSlice releases the current contents and holds copies of items.
func (a *Array[T, P, PP]) InitSlice(items []T) *Array[T, P, PP] {
	if a.overlaps(items) {
		a.AssignSlice(items)
		return a
	}
	a.reinit(len(items))
	a.count = len(items)
	elem.CopyConstruct(a.slots()[:len(items)], items)
	return a
}

// InitSeq releases the current contents and holds the values of seq.
func (a *Array[T, P, PP]) InitSeq(seq iter.Seq[T]) *Array[T, P, PP] {
	a.Release()
	for v := range seq {
		a.Push(v)
	}
	return a
}

// reinit leaves an empty array with a fresh, zeroed buffer for n elements.
// Callers raise the count before filling it, so a panicking hook leaves only
// zero values behind the written ones.
func (a *Array[T, P, PP]) reinit(n int) {
	checkCapacity(n >= 0, "construct %d elements", n)
	a.Release()
	if newCap := a.alloc().CalculateSlackReserve(n); newCap > 0 {
		a.data = a.alloc().Allocate(newCap)
		a.capacity = newCap
	}
}

// Clone returns a copy of a holding exactly the reserved capacity for its
// elements.
func (a *Array[T, P, PP]) Clone() *Array[T, P, PP] {
	return new(Array[T, P, PP]).InitSlice(a.Slice())
}

// Move returns a new array holding a's elements and leaves a empty. When the
// policy allows it the buffer itself changes hands; otherwise the elements
// are moved one by one into a buffer reserved for them.
func (a *Array[T, P, PP]) Move() *Array[T, P, PP] {
	b := new(Array[T, P, PP])
	b.AssignMove(a)
	return b
}

// Make returns a heap array of n fresh elements.
func Make[T any](n int) *Heap[T] {
	return new(Heap[T]).InitN(n)
}

// Fill returns a heap array of n copies of v.
func Fill[T any](n int, v T) *Heap[T] {
	return new(Heap[T]).InitFill(n, v)
}

// Of returns a heap array holding items.
func Of[T any](items ...T) *Heap[T] {
	return new(Heap[T]).InitSlice(items)
}

// Collect returns a heap array holding the values of seq.
func Collect[T any](seq iter.Seq[T]) *Heap[T] {
	return new(Heap[T]).InitSeq(seq)
}
