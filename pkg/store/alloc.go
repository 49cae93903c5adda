package store

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrUnknownBlock reports a pointer the allocator did not hand out.
var ErrUnknownBlock = errors.New("allocator: pointer was not allocated here")

// Allocator hands out blocks of raw memory. A zero-length block is the nil
// pointer; Free(nil, 0) succeeds and Reallocate(nil, 0, n) allocates.
type Allocator interface {
	Allocate(n int) (unsafe.Pointer, error)
	Free(p unsafe.Pointer, n int) error
	Reallocate(p unsafe.Pointer, old, n int) (unsafe.Pointer, error)
}

// HeapAllocator serves blocks from the Go heap and keeps them reachable
// until freed. It backs DefaultAllocator on platforms without mmap.
type HeapAllocator struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer][]byte
}

// NewHeapAllocator returns an empty HeapAllocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{blocks: make(map[unsafe.Pointer][]byte)}
}

func (h *HeapAllocator) Allocate(n int) (unsafe.Pointer, error) {
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	p := unsafe.Pointer(unsafe.SliceData(b))
	h.mu.Lock()
	h.blocks[p] = b
	h.mu.Unlock()
	return p, nil
}

func (h *HeapAllocator) Free(p unsafe.Pointer, _ int) error {
	if p == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.blocks[p]; !ok {
		return ErrUnknownBlock
	}
	delete(h.blocks, p)
	return nil
}

func (h *HeapAllocator) Reallocate(p unsafe.Pointer, old, n int) (unsafe.Pointer, error) {
	if p == nil {
		return h.Allocate(n)
	}
	h.mu.Lock()
	b, ok := h.blocks[p]
	h.mu.Unlock()
	if !ok {
		return nil, ErrUnknownBlock
	}
	np, err := h.Allocate(n)
	if err != nil {
		return nil, err
	}
	if np != nil {
		copy(unsafe.Slice((*byte)(np), n), b[:min(old, n)])
	}
	return np, h.Free(p, old)
}

// Live returns the number of blocks not yet freed.
func (h *HeapAllocator) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}
