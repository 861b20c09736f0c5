package alloc

import (
	"github.com/funny-falcon/vecalloc/elem"
	"github.com/funny-falcon/vecalloc/mem"
)

// Heap is the default policy: heap storage, no quantization, every block
// transferable.
type Heap[T any] struct{}

func (Heap[T]) Allocate(n int) mem.Block { return allocate[T](n, Identity) }

func (Heap[T]) Deallocate(b mem.Block) { mem.Free(b) }

func (Heap[T]) IsTransferable(mem.Block) bool { return true }

func (Heap[T]) InitialCapacity() int { return 0 }

func (Heap[T]) CalculateSlackGrow(newCount, oldCapacity int) int {
	tr := elem.TraitsOf[T]()
	return SlackGrow(newCount, oldCapacity, tr.Size, tr.Align, Identity)
}

func (Heap[T]) CalculateSlackShrink(newCount, oldCapacity int) int {
	tr := elem.TraitsOf[T]()
	return SlackShrink(newCount, oldCapacity, tr.Size, tr.Align, Identity)
}

func (Heap[T]) CalculateSlackReserve(count int) int {
	tr := elem.TraitsOf[T]()
	return SlackReserve(count, tr.Size, tr.Align, Identity)
}

// allocate sizes n elements of T through q. Pointer-free element types get
// raw bytes; the rest get typed memory the collector scans.
func allocate[T any](n int, q QuantizeFunc) mem.Block {
	if n == 0 {
		return mem.Block{}
	}
	tr := elem.TraitsOf[T]()
	size := q(uintptr(n)*tr.Size, tr.Align)
	if tr.PointerFree {
		return mem.Allocate(size, tr.Align)
	}
	return mem.AllocateOf(tr.Type, size, tr.Align)
}
