//go:build unix && !linux

package mem

// remapNative has no in-place resize outside Linux: map, copy, unmap.
func remapNative(b Block, count, align uintptr) Block {
	nb := mapNative(count, align)
	copy(nb.hdr.mapped, b.hdr.mapped[:min(count, b.hdr.size)])
	release(b)
	return nb
}
