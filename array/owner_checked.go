//go:build !nomemcheck

package array

import "sync/atomic"

// ownerTag identifies an array to the iterators it hands out.
type ownerTag uint64

var lastOwner atomic.Uint64

func (o *ownerTag) get() ownerTag {
	if *o == 0 {
		*o = ownerTag(lastOwner.Add(1))
	}
	return *o
}
