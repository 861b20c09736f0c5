//go:build unix

package mem

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const nativeAvailable = true

var pageSize = uintptr(unix.Getpagesize())

// mapNative serves a request from its own anonymous mapping. Mappings are
// page aligned, so any alignment up to the page size holds without padding.
func mapNative(count, align uintptr) Block {
	data, err := unix.Mmap(-1, 0, int(alignUp(count, pageSize)),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		logger.Fatal("mmap failed", zap.Uintptr("bytes", count), zap.Error(err))
	}
	logger.Debug("mapped", zap.Uintptr("bytes", count), zap.Int("span", len(data)))
	base := unsafe.Pointer(unsafe.SliceData(data))
	return Block{
		ptr: base,
		hdr: &header{base: base, size: count, align: align, mapped: data},
	}
}

func unmapNative(b Block) {
	if err := unix.Munmap(b.hdr.mapped); err != nil {
		logger.Fatal("munmap failed", zap.Uintptr("bytes", b.hdr.size), zap.Error(err))
	}
	logger.Debug("unmapped", zap.Uintptr("bytes", b.hdr.size))
}
