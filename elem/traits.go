// Package elem implements the element-wise lifecycle operations the array
// container relies on: construct, destruct, copy and move over slices of
// slots. Element types without lifecycle hooks take a bulk memmove/memclr
// path; types with hooks are handled one element at a time.
package elem

import (
	"errors"
	"reflect"
	"sync"

	"github.com/modern-go/reflect2"
)

// ErrLengthMismatch indicates destination and source slices of different
// lengths.
var ErrLengthMismatch = errors.New("elem: length mismatch")

// Constructor is implemented by *T when a fresh element needs more than the
// zero value.
type Constructor interface {
	Construct()
}

// Destructor is implemented by *T to release what an element holds. It must
// accept the zero value and moved-from elements.
type Destructor interface {
	Destruct()
}

// Copier is implemented by *T to copy src into the receiver. The receiver is
// either zero (construction) or live (assignment).
type Copier[T any] interface {
	CopyFrom(src *T)
}

// Mover is implemented by *T to take over src's contents, leaving src in a
// state Destruct accepts. MoveFrom must not panic: a relocation interrupted
// half way cannot be undone.
type Mover[T any] interface {
	MoveFrom(src *T)
}

// Traits describes how elements of one type are handled.
type Traits struct {
	Type        reflect2.Type
	Size        uintptr
	Align       uintptr
	PointerFree bool
	Constructs  bool
	Destructs   bool
	Copies      bool
	Moves       bool
}

// Trivial reports whether the type has no lifecycle hooks.
func (t *Traits) Trivial() bool {
	return !t.Constructs && !t.Destructs && !t.Copies && !t.Moves
}

var traitsCache sync.Map // reflect.Type -> *Traits

// TraitsOf returns the cached traits of T.
func TraitsOf[T any]() *Traits {
	rt := reflect.TypeFor[T]()
	if tr, ok := traitsCache.Load(rt); ok {
		return tr.(*Traits)
	}
	p := any((*T)(nil))
	_, constructs := p.(Constructor)
	_, destructs := p.(Destructor)
	_, copies := p.(Copier[T])
	_, moves := p.(Mover[T])
	tr := &Traits{
		Type:        reflect2.Type2(rt),
		Size:        rt.Size(),
		Align:       uintptr(rt.Align()),
		PointerFree: pointerFree(rt),
		Constructs:  constructs,
		Destructs:   destructs,
		Copies:      copies,
		Moves:       moves,
	}
	actual, _ := traitsCache.LoadOrStore(rt, tr)
	return actual.(*Traits)
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}
