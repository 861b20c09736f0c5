//go:build !unix

package mem

const nativeAvailable = false

const pageSize = 4096

func mapNative(count, align uintptr) Block { return portableRaw(count, align) }

func unmapNative(Block) {}

func remapNative(b Block, count, align uintptr) Block {
	nb := portableRaw(count, align)
	copy(nb.Bytes(), b.Bytes()[:min(count, b.hdr.size)])
	release(b)
	return nb
}
