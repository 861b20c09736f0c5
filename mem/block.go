// Package mem is the aligned heap primitive: raw allocate, reallocate and free
// of byte buffers with a caller-specified minimum alignment.
//
// Every allocation is described by a Block, an opaque record holding the
// aligned address together with the original backing allocation and the
// requested byte count. Reallocate and Free read the record instead of
// walking back from the aligned pointer.
//
// Large pointer-free requests are served natively by anonymous mappings on
// unix systems. Everything else comes from the Go heap, over-allocated and
// aligned up. Memory that will hold Go pointers must be requested with
// AllocateOf so that the backing allocation is typed and scanned by the
// collector; such memory never comes from a mapping.
//
// With checks enabled (the default build) every outstanding block is
// counted, and CheckLeaks is the teardown assertion.
package mem

import (
	"unsafe"

	"github.com/modern-go/reflect2"
)

// Block is an aligned allocation. The zero Block is the nil allocation.
type Block struct {
	ptr unsafe.Pointer
	hdr *header
}

type header struct {
	base     unsafe.Pointer // start of the backing allocation
	size     uintptr        // requested byte count
	align    uintptr        // effective alignment
	typ      reflect2.Type  // element type of a typed backing, nil for raw bytes
	mapped   []byte         // native mapping, nil on the portable path
	borrowed bool
	freed    bool
}

// Borrow wraps caller-owned storage into a Block. mem never frees it.
func Borrow(ptr unsafe.Pointer, size uintptr) Block {
	if ptr == nil {
		return Block{}
	}
	return Block{ptr: ptr, hdr: &header{base: ptr, size: size, align: 1, borrowed: true}}
}

func (b Block) Pointer() unsafe.Pointer { return b.ptr }

func (b Block) IsNil() bool { return b.ptr == nil }

// Size is the byte count that was requested, not the usable span.
func (b Block) Size() uintptr {
	if b.hdr == nil {
		return 0
	}
	return b.hdr.size
}

// Align is the effective alignment the block was placed at.
func (b Block) Align() uintptr {
	if b.hdr == nil {
		return 0
	}
	return b.hdr.align
}

// Native reports whether the block is backed by its own mapping.
func (b Block) Native() bool { return b.hdr != nil && b.hdr.mapped != nil }

// Borrowed reports whether the block wraps storage owned by someone else.
func (b Block) Borrowed() bool { return b.hdr != nil && b.hdr.borrowed }

// Typed reports whether the backing is typed memory scanned by the collector.
func (b Block) Typed() bool { return b.hdr != nil && b.hdr.typ != nil }

// Bytes returns the requested span as a byte slice. It must not be used to
// write into typed blocks whose element type carries pointers.
func (b Block) Bytes() []byte {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), b.hdr.size)
}
