//go:build unix && !linux

package store

import "unsafe"

func remap(a MmapAllocator, p unsafe.Pointer, old, n int) (unsafe.Pointer, error) {
	np, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	copy(unsafe.Slice((*byte)(np), n), unsafe.Slice((*byte)(p), min(old, n)))
	if err := a.Free(p, old); err != nil {
		return nil, err
	}
	return np, nil
}
