//go:build linux

package mem

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// remapNative resizes the mapping behind b, letting the kernel move it.
func remapNative(b Block, count, align uintptr) Block {
	span := int(alignUp(count, pageSize))
	data := b.hdr.mapped
	if span != len(data) {
		var err error
		data, err = unix.Mremap(b.hdr.mapped, span, unix.MREMAP_MAYMOVE)
		if err != nil {
			logger.Fatal("mremap failed", zap.Uintptr("bytes", count), zap.Error(err))
		}
		logger.Debug("remapped", zap.Uintptr("bytes", count), zap.Int("span", span))
	}
	b.hdr.freed = true
	base := unsafe.Pointer(unsafe.SliceData(data))
	return Block{
		ptr: base,
		hdr: &header{base: base, size: count, align: align, mapped: data},
	}
}
