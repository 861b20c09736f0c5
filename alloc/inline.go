package alloc

import (
	"reflect"
	"unsafe"

	"github.com/funny-falcon/vecalloc/elem"
	"github.com/funny-falcon/vecalloc/internal/check"
	"github.com/funny-falcon/vecalloc/mem"
)

// Inline keeps up to N elements inside the policy value itself and falls
// back to Heap beyond that. S is the storage type, normally [N]T; N is
// sizeof(S)/sizeof(T). The inline storage is never transferable: a second
// instance cannot free bytes embedded in the first.
//
// An Inline value must not be copied while its storage is in use.
type Inline[T any, S any] struct {
	storage   S
	secondary Heap[T]
}

func (p *Inline[T, S]) Allocate(n int) mem.Block {
	if n > 0 && n <= p.inlineCapacity() {
		checkInlineStorage[T, S]()
		return mem.Borrow(unsafe.Pointer(&p.storage), unsafe.Sizeof(p.storage))
	}
	return p.secondary.Allocate(n)
}

func (p *Inline[T, S]) Deallocate(b mem.Block) {
	if p.owns(b) {
		return
	}
	p.secondary.Deallocate(b)
}

func (p *Inline[T, S]) IsTransferable(b mem.Block) bool { return !p.owns(b) }

func (p *Inline[T, S]) InitialCapacity() int { return p.inlineCapacity() }

func (p *Inline[T, S]) CalculateSlackGrow(newCount, oldCapacity int) int {
	if n := p.inlineCapacity(); newCount <= n {
		return n
	}
	return p.secondary.CalculateSlackGrow(newCount, oldCapacity)
}

func (p *Inline[T, S]) CalculateSlackShrink(newCount, oldCapacity int) int {
	if n := p.inlineCapacity(); newCount <= n {
		return n
	}
	return p.secondary.CalculateSlackShrink(newCount, oldCapacity)
}

func (p *Inline[T, S]) CalculateSlackReserve(count int) int {
	if n := p.inlineCapacity(); count <= n {
		return n
	}
	return p.secondary.CalculateSlackReserve(count)
}

func (p *Inline[T, S]) inlineCapacity() int {
	return int(unsafe.Sizeof(p.storage) / max(elem.TraitsOf[T]().Size, 1))
}

func (p *Inline[T, S]) owns(b mem.Block) bool {
	return p.inlineCapacity() > 0 && b.Pointer() == unsafe.Pointer(&p.storage)
}

// checkInlineStorage rejects storage that is under-aligned for T, or that
// the collector would not scan as T when T carries pointers.
func checkInlineStorage[T, S any]() {
	tr := elem.TraitsOf[T]()
	st := reflect.TypeFor[S]()
	check.That(uintptr(st.Align()) >= tr.Align, ErrBadInlineStorage,
		"%s is aligned to %d, element needs %d", st, st.Align(), tr.Align)
	if !tr.PointerFree {
		check.That(st.Kind() == reflect.Array && st.Elem() == reflect.TypeFor[T](), ErrBadInlineStorage,
			"%s must be an array of %s", st, reflect.TypeFor[T]())
	}
}
