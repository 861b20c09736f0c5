package array

import (
	"iter"

	"github.com/funny-falcon/vecalloc/internal/check"
)

// Iterator is a position in an Array. In checked builds it carries the tag
// of the array it came from, and every operation taking an Iterator verifies
// both the tag and the bounds before touching anything.
type Iterator struct {
	index int
	owner ownerTag
}

func (it Iterator) Index() int { return it.index }

// Add returns the iterator moved by n positions.
func (it Iterator) Add(n int) Iterator {
	it.index += n
	return it
}

func (it Iterator) Next() Iterator { return it.Add(1) }

func (it Iterator) Prev() Iterator { return it.Add(-1) }

// Begin returns the position of the first element.
func (a *Array[T, P, PP]) Begin() Iterator { return a.IteratorAt(0) }

// End returns the position past the last element.
func (a *Array[T, P, PP]) End() Iterator { return a.IteratorAt(a.count) }

// IteratorAt returns the position i, which may be End.
func (a *Array[T, P, PP]) IteratorAt(i int) Iterator {
	a.checkPosition(i)
	return Iterator{index: i, owner: a.owner.get()}
}

// Deref returns a pointer to the element at it.
func (a *Array[T, P, PP]) Deref(it Iterator) *T {
	a.checkIterator(it, false)
	return &a.slots()[it.index]
}

// checkIterator validates it against [begin, end], or [begin, end) when
// the element must be dereferenced.
func (a *Array[T, P, PP]) checkIterator(it Iterator, allowEnd bool) {
	if !check.Enabled {
		return
	}
	if it.owner != a.owner.get() {
		check.Fail(ErrInvalidIterator, "iterator belongs to another array")
	}
	hi := a.count
	if !allowEnd {
		hi--
	}
	if it.index < 0 || it.index > hi {
		check.Fail(ErrInvalidIterator, "position %d, len %d", it.index, a.count)
	}
}

func (a *Array[T, P, PP]) checkIteratorRange(first, last Iterator) {
	a.checkIterator(first, true)
	a.checkIterator(last, true)
	if check.Enabled && first.index > last.index {
		check.Fail(ErrInvalidRange, "first %d > last %d", first.index, last.index)
	}
}

// All yields index and value of every element in order.
func (a *Array[T, P, PP]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.count; i++ {
			if !yield(i, a.slots()[i]) {
				return
			}
		}
	}
}

// Values yields every element in order.
func (a *Array[T, P, PP]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.count; i++ {
			if !yield(a.slots()[i]) {
				return
			}
		}
	}
}

// Backward yields index and value of every element from the last one.
func (a *Array[T, P, PP]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.count - 1; i >= 0; i-- {
			if !yield(i, a.slots()[i]) {
				return
			}
		}
	}
}
