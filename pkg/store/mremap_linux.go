package store

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func remap(_ MmapAllocator, p unsafe.Pointer, old, n int) (unsafe.Pointer, error) {
	b, err := unix.Mremap(unsafe.Slice((*byte)(p), old), n, unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(unsafe.SliceData(b)), nil
}
