package array_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/vecalloc/array"
)

func TestEraseUnstableMiddle(t *testing.T) {
	noLeaks(t, func() {
		a := array.Of(seq(0, 1000)...)
		defer a.Release()

		a.Erase(400, 200, false)
		require.Equal(t, 800, a.Len())
		assert.Equal(t, 1000, a.Cap())

		want := append(seq(0, 400), seq(800, 1000)...)
		want = append(want, seq(600, 800)...)
		assert.Equal(t, want, a.Slice())
	})
}

func TestEraseUnstableOne(t *testing.T) {
	a := array.Of(seq(0, 1000)...)
	defer a.Release()

	a.Erase(500, 1, false)
	assert.Equal(t, 999, a.Len())
	assert.Equal(t, 999, a.At(500), "the last element fills the gap")
	assert.Equal(t, 998, a.Last())
	assert.Equal(t, 499, a.At(499))
	assert.Equal(t, 501, a.At(501))
}

func TestEraseUnstableShortTail(t *testing.T) {
	a := array.Of(seq(0, 10)...)
	defer a.Release()

	a.Erase(2, 5, false)
	assert.Equal(t, []int{0, 1, 7, 8, 9}, a.Slice())
	a.Erase(3, 2, false)
	assert.Equal(t, []int{0, 1, 7}, a.Slice())
}

func TestStableErase(t *testing.T) {
	noLeaks(t, func() {
		var c counters
		a := new(array.Heap[item]).InitSlice(items(&c, seq(0, 10)...))
		defer a.Release()
		c = counters{}

		a.StableErase(2, 3, false)
		assert.Equal(t, []int{0, 1, 5, 6, 7, 8, 9}, itemValues(a.Slice()))
		assert.Equal(t, 5, c.moves)
		assert.Zero(t, c.destructs, "erased values are overwritten by moves")
	})
}

func TestEraseRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	a := array.Of(seq(0, 2000)...)
	defer a.Release()
	ref := seq(0, 2000)

	for a.Len() > 0 {
		at := rnd.Intn(a.Len())
		n := rnd.Intn(min(a.Len()-at, 50) + 1)
		if rnd.Intn(2) == 0 {
			a.StableErase(at, n, true)
			ref = slices.Delete(ref, at, at+n)
			require.Equal(t, ref, a.Slice())
		} else {
			a.Erase(at, n, true)
			ref = slices.Delete(ref, at, at+n)
			got := slices.Clone(a.Slice())
			slices.Sort(got)
			slices.Sort(ref)
			require.Equal(t, ref, got)
			ref = slices.Clone(a.Slice())
		}
		require.GreaterOrEqual(t, a.Cap(), a.Len())
	}
}

func TestEraseShrinks(t *testing.T) {
	a := array.Of(seq(0, 5000)...)
	defer a.Release()

	a.StableErase(0, 4900, false)
	assert.Equal(t, 5000, a.Cap())
	a.StableErase(0, 1, true)
	assert.Equal(t, 99, a.Cap())
	assert.Equal(t, seq(4901, 5000), a.Slice())
}

func TestEraseAt(t *testing.T) {
	a := array.Of(seq(0, 6)...)
	defer a.Release()

	it := a.StableEraseAt(a.IteratorAt(1), a.IteratorAt(3), false)
	assert.Equal(t, 1, it.Index())
	assert.Equal(t, 3, *a.Deref(it))
	assert.Equal(t, []int{0, 3, 4, 5}, a.Slice())

	it = a.EraseAt(a.Begin(), a.Begin().Next(), false)
	assert.Equal(t, 5, *a.Deref(it))
	assert.Equal(t, []int{5, 3, 4}, a.Slice())

	it = a.EraseAt(a.End(), a.End(), false)
	assert.Equal(t, a.End(), it)
}

func TestPop(t *testing.T) {
	noLeaks(t, func() {
		var c counters
		var a array.Heap[item]
		defer a.Release()
		a.Append(items(&c, 1, 2, 3)...)

		v := a.Pop(false)
		assert.Equal(t, 3, v.v)
		assert.Equal(t, 2, a.Len())
		assert.Equal(t, 1, c.moves)
		assert.Zero(t, c.destructs)

		for !a.IsEmpty() {
			a.Pop(true)
		}
		assert.Zero(t, a.Len())
	})
}
