package array

import (
	"slices"

	"github.com/funny-falcon/vecalloc/elem"
)

// Insert copies items into the array so that the first of them ends up at
// index. Elements from index on shift up by len(items). It returns index.
//
// If a copy hook panics and the array had to grow, the array is unchanged.
// Without growth it keeps len(items) more elements, of which those not yet
// written are zero or moved-from values.
func (a *Array[T, P, PP]) Insert(index int, items ...T) int {
	a.checkPosition(index)
	if a.overlaps(items) {
		items = slices.Clone(items)
	}
	a.insert(index, items, false)
	return index
}

// InsertAt is Insert at an iterator position, returning the position of the
// first inserted element.
func (a *Array[T, P, PP]) InsertAt(pos Iterator, items ...T) Iterator {
	a.checkIterator(pos, true)
	a.Insert(pos.index, items...)
	return pos
}

// Emplace moves v into the array at index.
func (a *Array[T, P, PP]) Emplace(index int, v T) int {
	a.checkPosition(index)
	a.insert(index, []T{v}, true)
	return index
}

// InsertDefaulted inserts n fresh elements at index.
func (a *Array[T, P, PP]) InsertDefaulted(index, n int) int {
	a.checkPosition(index)
	checkCapacity(n >= 0, "insert %d elements", n)
	fresh := make([]T, n)
	elem.Construct(fresh)
	a.insert(index, fresh, true)
	return index
}

// Append copies items to the end of the array.
func (a *Array[T, P, PP]) Append(items ...T) {
	a.Insert(a.count, items...)
}

// Push moves v to the end of the array and returns its index.
func (a *Array[T, P, PP]) Push(v T) int {
	i := a.count
	if i == a.capacity {
		a.growWith(i, 1, func(gap []T) { elem.MoveConstructOne(&gap[0], &v) })
	} else {
		elem.MoveConstructOne(&a.slots()[i], &v)
		a.count = i + 1
	}
	return i
}

// PushDefault appends a fresh element and returns a pointer to it, valid
// until the next mutation.
func (a *Array[T, P, PP]) PushDefault() *T {
	i := a.count
	if i == a.capacity {
		a.growWith(i, 1, elem.Construct[T])
	} else {
		elem.Construct(a.slots()[i : i+1])
		a.count = i + 1
	}
	return &a.slots()[i]
}

// growWith reallocates for k more elements with a gap of k slots at index.
// place builds the new elements in the gap before the existing ones are
// moved around it. If place panics the old buffer is untouched, and whatever
// place built is destructed together with the new buffer.
func (a *Array[T, P, PP]) growWith(index, k int, place func(gap []T)) {
	p := a.alloc()
	n := a.count
	newCount := n + k
	newCap := p.CalculateSlackGrow(newCount, a.capacity)
	nb := p.Allocate(newCap)
	checkCapacity(nb.Pointer() != a.data.Pointer(), "grow reused the current buffer")
	dst := view[T](nb, newCap)
	gap := dst[index : index+k]
	placed := false
	defer func() {
		if !placed {
			elem.Destruct(gap)
			p.Deallocate(nb)
		}
	}()
	place(gap)
	placed = true
	if n > 0 {
		src := a.slots()[:n]
		elem.MoveConstruct(dst[:index], src[:index])
		elem.MoveConstruct(dst[index+k:newCount], src[index:])
		elem.Destruct(src)
	}
	p.Deallocate(a.data)
	a.data, a.capacity, a.count = nb, newCap, newCount
}

// insert places items at index. With move set, items are moved from instead
// of copied.
//
// Without a reallocation the target positions split into four zones around
// the boundaries index, index+k, n and n+k (k inserted, n live before):
//
//	[max(n, index+k), n+k)  shifted tail past the old end: move-construct
//	[index+k, n)            shifted tail over live slots:  move-assign, backward
//	[index, min(index+k,n)) new values over live slots:    assign
//	[n, index+k)            new values past the old end:   construct
//
// Positions before index are untouched. The count covers the whole window
// once the tail is extended, so a panicking copy hook leaves n+k elements, the
// ones not yet written being zero or moved-from; all of them are destructed
// as usual later.
func (a *Array[T, P, PP]) insert(index int, items []T, move bool) {
	k := len(items)
	if k == 0 {
		return
	}
	n := a.count
	newCount := n + k

	put := elem.CopyConstruct[T]
	over := elem.CopyAssign[T]
	if move {
		put, over = elem.MoveConstruct[T], elem.MoveAssign[T]
	}

	if newCount > a.capacity {
		a.growWith(index, k, func(gap []T) { put(gap, items) })
		return
	}

	s := a.slots()
	tail := max(n, index+k)
	elem.MoveConstruct(s[tail:newCount], s[tail-k:n])
	a.count = newCount
	if index+k < n {
		elem.MoveAssign(s[index+k:n], s[index:n-k])
	}
	live := min(index+k, n)
	over(s[index:live], items[:live-index])
	if index+k > n {
		put(s[n:index+k], items[n-index:])
	}
}
