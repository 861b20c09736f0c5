package mem

import "errors"

var (
	// ErrInvalidAlignment indicates an alignment that is not a power of two.
	ErrInvalidAlignment = errors.New("mem: alignment is not a power of two")

	// ErrUnreachableAlignment indicates typed memory that cannot be placed at
	// the requested alignment by shifting whole elements.
	ErrUnreachableAlignment = errors.New("mem: alignment unreachable for element type")

	// ErrNotOwned indicates a free or reallocation of borrowed storage.
	ErrNotOwned = errors.New("mem: block is not owned by the heap")

	// ErrDoubleFree indicates a block released twice.
	ErrDoubleFree = errors.New("mem: block already freed")

	// ErrAllocFailed indicates the underlying allocation returned nothing.
	ErrAllocFailed = errors.New("mem: allocation failed")
)
