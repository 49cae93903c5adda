//go:build !unix

package store

var heap = NewHeapAllocator()

// DefaultAllocator returns the allocator NewRaw callers should use when
// they have no preference.
func DefaultAllocator() Allocator { return heap }
