//go:build unix

package store

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapAllocator maps anonymous, process-private memory outside the Go heap.
type MmapAllocator struct{}

// DefaultAllocator returns the allocator NewRaw callers should use when
// they have no preference.
func DefaultAllocator() Allocator { return MmapAllocator{} }

func (MmapAllocator) Allocate(n int) (unsafe.Pointer, error) {
	if n == 0 {
		return nil, nil
	}
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(unsafe.SliceData(b)), nil
}

func (MmapAllocator) Free(p unsafe.Pointer, n int) error {
	if p == nil || n == 0 {
		return nil
	}
	return unix.Munmap(unsafe.Slice((*byte)(p), n))
}

func (a MmapAllocator) Reallocate(p unsafe.Pointer, old, n int) (unsafe.Pointer, error) {
	switch {
	case p == nil || old == 0:
		return a.Allocate(n)
	case n == 0:
		return nil, a.Free(p, old)
	}
	return remap(a, p, old, n)
}
