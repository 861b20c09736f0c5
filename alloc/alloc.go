// Package alloc holds the allocator policies a container is generic over.
//
// A policy answers two kinds of questions: where the bytes for n elements
// come from (Allocate, Deallocate, IsTransferable) and how many elements to
// ask for when the element count changes (the CalculateSlack* family).
// Containers embed one policy value each, because a policy may carry inline
// storage that cannot be claimed twice.
package alloc

import (
	"errors"

	"github.com/funny-falcon/vecalloc/mem"
)

var (
	// ErrCapacity indicates an impossible capacity computation.
	ErrCapacity = errors.New("alloc: capacity out of range")

	// ErrBadInlineStorage indicates inline storage that cannot hold the element type.
	ErrBadInlineStorage = errors.New("alloc: inline storage cannot hold element type")
)

// Policy is the allocator contract for elements of type T.
type Policy[T any] interface {
	// Allocate returns storage for n elements.
	Allocate(n int) mem.Block
	// Deallocate releases storage returned by Allocate of this policy type.
	Deallocate(b mem.Block)
	// IsTransferable reports whether another instance of the same policy
	// type may free b, which is what lets a container steal it on move.
	IsTransferable(b mem.Block) bool
	// InitialCapacity is the capacity of a freshly reset container.
	InitialCapacity() int
	// CalculateSlackGrow picks the capacity when newCount exceeds oldCapacity.
	CalculateSlackGrow(newCount, oldCapacity int) int
	// CalculateSlackShrink picks the capacity when newCount drops below
	// oldCapacity. It returns oldCapacity when shrinking is not worth it.
	CalculateSlackShrink(newCount, oldCapacity int) int
	// CalculateSlackReserve is the capacity for exactly count elements.
	CalculateSlackReserve(count int) int
}

// Ptr constrains *P to be a Policy[T]. Containers hold a P by value and call
// it through *P, so every call is resolved statically.
type Ptr[T, P any] interface {
	*P
	Policy[T]
}
