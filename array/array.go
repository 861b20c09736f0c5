// Package array implements a growable contiguous array whose storage comes
// from an allocator policy.
//
// An Array owns its buffer and the elements in it. Capacity changes are
// decided by the policy (see package alloc); element lifecycles go through
// package elem, so element types may hook construction, destruction, copy
// and move.
//
// The zero Array is empty and ready to use. An Array must not be copied by
// value once used: use Clone, Move, Assign or AssignMove. Arrays are not safe
// for concurrent mutation.
//
// Storage is only reclaimed through Release (directly, or when Move/AssignMove
// hand it over). Native and tracked blocks are not returned by the garbage
// collector's bookkeeping alone.
package array

import (
	"unsafe"

	"github.com/funny-falcon/vecalloc/alloc"
	"github.com/funny-falcon/vecalloc/elem"
	"github.com/funny-falcon/vecalloc/mem"
)

// Array is a growable array of T whose storage is managed by the policy P.
type Array[T any, P any, PP alloc.Ptr[T, P]] struct {
	_ noCopy

	count    int
	capacity int
	data     mem.Block
	policy   P
	owner    ownerTag
}

// Heap is an Array using the default heap policy.
type Heap[T any] = Array[T, alloc.Heap[T], *alloc.Heap[T]]

// Pooled is an Array whose capacities are rounded to allocator size classes.
type Pooled[T any] = Array[T, alloc.Pooled[T], *alloc.Pooled[T]]

// Inline is an Array keeping its first elements in the storage S (normally
// [N]T) inside the Array value.
type Inline[T any, S any] = Array[T, alloc.Inline[T, S], *alloc.Inline[T, S]]

// noCopy makes go vet's copylocks check flag copies of an Array.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func (a *Array[T, P, PP]) alloc() PP { return PP(&a.policy) }

// Len returns the number of live elements.
func (a *Array[T, P, PP]) Len() int { return a.count }

// Cap returns the number of elements the buffer can hold.
func (a *Array[T, P, PP]) Cap() int { return a.capacity }

func (a *Array[T, P, PP]) IsEmpty() bool { return a.count == 0 }

// Slack returns the number of unused slots.
func (a *Array[T, P, PP]) Slack() int { return a.capacity - a.count }

// AllocatedSize returns the size of the buffer in bytes.
func (a *Array[T, P, PP]) AllocatedSize() uintptr {
	return uintptr(a.capacity) * elem.TraitsOf[T]().Size
}

func (a *Array[T, P, PP]) IsValidIndex(i int) bool { return i >= 0 && i < a.count }

// At returns a copy of element i.
func (a *Array[T, P, PP]) At(i int) T {
	a.checkIndex(i)
	return a.slots()[i]
}

// Ref returns a pointer to element i, valid until the next mutation.
func (a *Array[T, P, PP]) Ref(i int) *T {
	a.checkIndex(i)
	return &a.slots()[i]
}

// Set copy-assigns v to element i.
func (a *Array[T, P, PP]) Set(i int, v T) {
	a.checkIndex(i)
	s := a.slots()
	elem.CopyAssign(s[i:i+1], []T{v})
}

// Last returns a copy of the last element.
func (a *Array[T, P, PP]) Last() T {
	a.checkNotEmpty()
	return a.slots()[a.count-1]
}

func (a *Array[T, P, PP]) Swap(i, j int) {
	a.checkIndex(i)
	a.checkIndex(j)
	s := a.slots()
	s[i], s[j] = s[j], s[i]
}

// Slice returns the live elements. It aliases the buffer and is valid until
// the next mutation.
func (a *Array[T, P, PP]) Slice() []T {
	return a.slots()[:a.count:a.count]
}

// Release destructs every element and frees the buffer, leaving an empty
// array with no storage.
func (a *Array[T, P, PP]) Release() {
	a.destructAll()
	a.alloc().Deallocate(a.data)
	a.data, a.capacity = mem.Block{}, 0
}

// slots views the whole buffer, live elements and slack.
func (a *Array[T, P, PP]) slots() []T {
	return view[T](a.data, a.capacity)
}

func view[T any](b mem.Block, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(b.Pointer()), n)
}

func (a *Array[T, P, PP]) destructAll() {
	if a.count > 0 {
		elem.Destruct(a.slots()[:a.count])
		a.count = 0
	}
}

// resizeTo moves the live elements into a buffer of exactly newCap slots.
func (a *Array[T, P, PP]) resizeTo(newCap int) {
	if newCap == a.capacity {
		return
	}
	checkCapacity(newCap >= a.count, "resize to %d below count %d", newCap, a.count)
	p := a.alloc()
	var nb mem.Block
	if newCap > 0 {
		nb = p.Allocate(newCap)
	}
	if nb.Pointer() != a.data.Pointer() || nb.IsNil() {
		if a.count > 0 {
			src := a.slots()[:a.count]
			elem.MoveConstruct(view[T](nb, newCap)[:a.count], src)
			elem.Destruct(src)
		}
		p.Deallocate(a.data)
	}
	a.data, a.capacity = nb, newCap
}

// shrinkIfBeneficial lets the policy drop slack after elements were removed.
func (a *Array[T, P, PP]) shrinkIfBeneficial() {
	if a.count < a.capacity {
		if newCap := a.alloc().CalculateSlackShrink(a.count, a.capacity); newCap != a.capacity {
			a.resizeTo(newCap)
		}
	}
}

// resetEmpty gives the array a fresh empty state once its buffer has been
// handed over or released.
func (a *Array[T, P, PP]) resetEmpty() {
	a.count = 0
	a.capacity = a.alloc().InitialCapacity()
	a.data = mem.Block{}
	if a.capacity > 0 {
		a.data = a.alloc().Allocate(a.capacity)
	}
}

// overlaps reports whether items alias this array's buffer.
func (a *Array[T, P, PP]) overlaps(items []T) bool {
	if len(items) == 0 || a.capacity == 0 {
		return false
	}
	size := elem.TraitsOf[T]().Size
	if size == 0 {
		return false
	}
	lo := uintptr(a.data.Pointer())
	hi := lo + uintptr(a.capacity)*size
	p := uintptr(unsafe.Pointer(unsafe.SliceData(items)))
	q := p + uintptr(len(items))*size
	return p < hi && lo < q
}
