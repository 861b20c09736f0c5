package mem

import (
	"unsafe"

	"github.com/modern-go/reflect2"

	"github.com/funny-falcon/vecalloc/internal/check"
)

// NativeThreshold is the smallest raw request served by a native mapping.
const NativeThreshold = 64 << 10

// Allocate returns count bytes of pointer-free memory aligned to at least
// alignment. A zero count is treated as one byte. Requests of 16 bytes or
// more are aligned to at least 16, smaller ones to at least 8.
func Allocate(count, alignment uintptr) Block {
	count, align := normalize(count, alignment)
	b := allocRaw(count, align)
	stats.alloc(b)
	return b
}

// AllocateOf is Allocate for memory that will hold values of typ. The
// backing is a typed allocation, so Go pointers stored in it stay visible to
// the collector.
func AllocateOf(typ reflect2.Type, count, alignment uintptr) Block {
	count, align := normalize(count, alignment)
	b := allocTyped(typ, count, align)
	stats.alloc(b)
	return b
}

// Reallocate resizes b to count bytes. A nil b behaves as Allocate. Native
// blocks are resized in place when the system allows it; otherwise a fresh
// block of the same kind is allocated, min(count, b.Size()) bytes are copied
// over and b is freed.
func Reallocate(b Block, count, alignment uintptr) Block {
	if b.IsNil() {
		return Allocate(count, alignment)
	}
	checkLive(b)
	count, align := normalize(count, alignment)
	old := *b.hdr

	var nb Block
	switch {
	case b.hdr.mapped != nil && align <= pageSize:
		nb = remapNative(b, count, align)
	case b.hdr.typ != nil:
		nb = allocTyped(b.hdr.typ, count, align)
		copyTyped(b.hdr.typ, nb.ptr, b.ptr, min(count, old.size))
		release(b)
	default:
		nb = allocRaw(count, align)
		copy(unsafe.Slice((*byte)(nb.ptr), count), unsafe.Slice((*byte)(b.ptr), min(count, old.size)))
		release(b)
	}
	stats.realloc(&old, nb)
	return nb
}

// Free releases b. Freeing the nil block is a no-op.
func Free(b Block) {
	if b.IsNil() {
		return
	}
	checkLive(b)
	stats.free(b)
	release(b)
}

func normalize(count, alignment uintptr) (uintptr, uintptr) {
	check.That(alignment != 0 && alignment&(alignment-1) == 0, ErrInvalidAlignment,
		"alignment %d", alignment)
	if count == 0 {
		count = 1
	}
	floor := uintptr(8)
	if count >= 16 {
		floor = 16
	}
	return count, max(alignment, floor)
}

func checkLive(b Block) {
	check.That(!b.hdr.borrowed, ErrNotOwned, "block %p", b.ptr)
	check.That(!b.hdr.freed, ErrDoubleFree, "block %p", b.ptr)
}

func allocRaw(count, align uintptr) Block {
	var b Block
	if count >= NativeThreshold && align <= pageSize && nativeAvailable {
		b = mapNative(count, align)
	} else {
		b = portableRaw(count, align)
	}
	check.That(b.ptr != nil, ErrAllocFailed, "%d bytes aligned to %d", count, align)
	return b
}

func allocTyped(typ reflect2.Type, count, align uintptr) Block {
	b := portableTyped(typ, count, align)
	check.That(b.ptr != nil, ErrAllocFailed, "%d bytes of %s aligned to %d", count, typ, align)
	return b
}

func release(b Block) {
	if b.hdr.mapped != nil {
		unmapNative(b)
	}
	b.hdr.freed = true
	b.hdr.base = nil
	b.hdr.mapped = nil
}

func alignUp(p, align uintptr) uintptr {
	return (p + align - 1) &^ (align - 1)
}
