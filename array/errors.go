package array

import (
	"errors"

	"github.com/funny-falcon/vecalloc/alloc"
	"github.com/funny-falcon/vecalloc/internal/check"
)

var (
	// ErrInvalidIterator indicates an iterator of another array, or one
	// outside the positions the operation accepts.
	ErrInvalidIterator = errors.New("array: invalid iterator")

	// ErrInvalidRange indicates a range with first > last or outside the array.
	ErrInvalidRange = errors.New("array: invalid range")

	// ErrIndexOutOfRange indicates an index outside the live elements.
	ErrIndexOutOfRange = errors.New("array: index out of range")

	// ErrEmpty indicates an operation that needs at least one element.
	ErrEmpty = errors.New("array: empty")
)

// The checks below test the condition before calling into check, so the
// format arguments are only built on failure.

func (a *Array[T, P, PP]) checkIndex(i int) {
	if check.Enabled && (i < 0 || i >= a.count) {
		check.Fail(ErrIndexOutOfRange, "index %d, len %d", i, a.count)
	}
}

// checkPosition accepts every insertion point, end included.
func (a *Array[T, P, PP]) checkPosition(i int) {
	if check.Enabled && (i < 0 || i > a.count) {
		check.Fail(ErrIndexOutOfRange, "position %d, len %d", i, a.count)
	}
}

func (a *Array[T, P, PP]) checkRange(index, n int) {
	if check.Enabled && (n < 0 || index < 0 || index+n > a.count) {
		check.Fail(ErrInvalidRange, "[%d, %d) of len %d", index, index+n, a.count)
	}
}

func (a *Array[T, P, PP]) checkNotEmpty() {
	if a.count == 0 {
		check.Fail(ErrEmpty, "no elements")
	}
}

// checkCapacity guards states that only a broken growth computation reaches.
func checkCapacity(cond bool, format string, args ...interface{}) {
	check.That(cond, alloc.ErrCapacity, format, args...)
}
