package mem

import (
	"reflect"
	"unsafe"

	"github.com/modern-go/reflect2"

	"github.com/funny-falcon/vecalloc/internal/check"
)

// portableRaw over-allocates a byte slice by the alignment and keeps the
// original base in the header so Free and Reallocate never need to walk back
// from the aligned address.
func portableRaw(count, align uintptr) Block {
	buf := make([]byte, count+align)
	base := unsafe.Pointer(unsafe.SliceData(buf))
	off := alignUp(uintptr(base), align) - uintptr(base)
	return Block{
		ptr: unsafe.Add(base, off),
		hdr: &header{base: base, size: count, align: align},
	}
}

// portableTyped allocates a typed slice of typ large enough for count bytes
// and shifts the start by whole elements until it is aligned, so the
// collector's view of the layout stays correct.
func portableTyped(typ reflect2.Type, count, align uintptr) Block {
	esz := typ.Type1().Size()
	if esz == 0 {
		return portableRaw(count, align)
	}
	shifts := align / gcd(esz, align)
	n := (count+esz-1)/esz + shifts
	st := reflect2.ConfigUnsafe.Type2(reflect.SliceOf(typ.Type1())).(reflect2.SliceType)
	base := *(*unsafe.Pointer)(st.UnsafeMakeSlice(int(n), int(n)))
	for k := uintptr(0); k < shifts; k++ {
		p := unsafe.Add(base, k*esz)
		if uintptr(p)&(align-1) == 0 {
			return Block{
				ptr: p,
				hdr: &header{base: base, size: count, align: align, typ: typ},
			}
		}
	}
	check.Fail(ErrUnreachableAlignment, "%s of size %d at %d", typ, esz, align)
	return Block{}
}

// copyTyped copies whole elements of typ with write barriers.
func copyTyped(typ reflect2.Type, dst, src unsafe.Pointer, size uintptr) {
	esz := typ.Type1().Size()
	if esz == 0 {
		return
	}
	for off := uintptr(0); off+esz <= size; off += esz {
		typ.UnsafeSet(unsafe.Add(dst, off), unsafe.Add(src, off))
	}
}

func gcd(a, b uintptr) uintptr {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
