package elem

import (
	"unsafe"

	"github.com/funny-falcon/vecalloc/internal/check"
)

// Construct turns dead slots into fresh elements.
func Construct[T any](dst []T) {
	clear(dst)
	if TraitsOf[T]().Constructs {
		for i := range dst {
			any(&dst[i]).(Constructor).Construct()
		}
	}
}

// Destruct ends the lifetime of live elements in index order. Slots are
// zeroed afterwards so the collector drops what they referenced, and so a
// type with a destructor never sees a stale copy in a dead slot.
func Destruct[T any](s []T) {
	tr := TraitsOf[T]()
	if tr.Destructs {
		for i := range s {
			any(&s[i]).(Destructor).Destruct()
		}
	}
	if !tr.PointerFree || tr.Destructs {
		clear(s)
	}
}

// CopyConstruct copies src into the dead slots of dst.
func CopyConstruct[T any](dst, src []T) {
	n := sameLen(dst, src)
	if !TraitsOf[T]().Copies {
		copy(dst, src)
		return
	}
	for i := 0; i < n; i++ {
		var zero T
		dst[i] = zero
		any(&dst[i]).(Copier[T]).CopyFrom(&src[i])
	}
}

// CopyAssign copies src over the live elements of dst.
func CopyAssign[T any](dst, src []T) {
	n := sameLen(dst, src)
	tr := TraitsOf[T]()
	switch {
	case tr.Copies:
		for i := 0; i < n; i++ {
			any(&dst[i]).(Copier[T]).CopyFrom(&src[i])
		}
	case tr.Destructs:
		for i := 0; i < n; i++ {
			any(&dst[i]).(Destructor).Destruct()
			dst[i] = src[i]
		}
	default:
		copy(dst, src)
	}
}

// MoveConstruct moves src into the dead slots of dst. dst and src may
// overlap; the vacated part of src is left zeroed.
func MoveConstruct[T any](dst, src []T) {
	move(dst, src, false)
}

// MoveAssign moves src over the live elements of dst. dst and src may
// overlap; the vacated part of src is left zeroed.
func MoveAssign[T any](dst, src []T) {
	move(dst, src, true)
}

// MoveConstructOne moves *src into the dead slot *dst.
func MoveConstructOne[T any](dst, src *T) {
	if TraitsOf[T]().Moves {
		var zero T
		*dst = zero
		any(dst).(Mover[T]).MoveFrom(src)
		return
	}
	*dst = *src
	var zero T
	*src = zero
}

func move[T any](dst, src []T, live bool) {
	n := sameLen(dst, src)
	if n == 0 {
		return
	}
	tr := TraitsOf[T]()
	if !tr.Moves && !(live && tr.Destructs) {
		copy(dst, src)
		if !tr.PointerFree || tr.Destructs {
			vacate(dst, src, tr.Size)
		}
		return
	}
	// iterate in the direction that never overwrites an unread source element
	if uintptr(unsafe.Pointer(&dst[0])) > uintptr(unsafe.Pointer(&src[0])) {
		for i := n - 1; i >= 0; i-- {
			moveOne(&dst[i], &src[i], live, tr)
		}
	} else {
		for i := 0; i < n; i++ {
			moveOne(&dst[i], &src[i], live, tr)
		}
	}
}

func moveOne[T any](dst, src *T, live bool, tr *Traits) {
	if dst == src {
		return
	}
	if tr.Moves {
		if !live {
			var zero T
			*dst = zero
		}
		any(dst).(Mover[T]).MoveFrom(src)
		return
	}
	if live {
		any(dst).(Destructor).Destruct()
	}
	*dst = *src
	var zero T
	*src = zero
}

// vacate zeroes the slots of src that are not also slots of dst.
func vacate[T any](dst, src []T, size uintptr) {
	if size == 0 {
		return
	}
	n := len(src)
	d := (int(uintptr(unsafe.Pointer(&dst[0]))) - int(uintptr(unsafe.Pointer(&src[0])))) / int(size)
	switch {
	case d >= n || d <= -n:
		clear(src)
	case d > 0:
		clear(src[:d])
	case d < 0:
		clear(src[n+d:])
	}
}

func sameLen[T any](dst, src []T) int {
	if len(dst) != len(src) {
		check.Fail(ErrLengthMismatch, "%d slots for %d elements", len(dst), len(src))
	}
	return len(dst)
}
