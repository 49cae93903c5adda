package store

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Raw is a Store over a block of memory addressed by pointer. An owning Raw
// is created through an Allocator and must be released with Free; a
// borrowed Raw (WrapRaw) never reallocates or frees.
type Raw struct {
	ptr   unsafe.Pointer
	n     int
	alloc Allocator
	freed bool
}

// NewRaw allocates n bytes from alloc.
func NewRaw(alloc Allocator, n int) (*Raw, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "raw store of %d bytes", n)
	}
	p, err := alloc.Allocate(n)
	if err != nil {
		return nil, err
	}
	return &Raw{ptr: p, n: n, alloc: alloc}, nil
}

// WrapRaw views n bytes at p. The caller keeps p valid, and unmoved, for as
// long as the store is in use.
func WrapRaw(p unsafe.Pointer, n int) *Raw {
	return &Raw{ptr: p, n: n}
}

func (r *Raw) Len() int                { return r.n }
func (r *Raw) Owned() bool             { return r.alloc != nil }
func (r *Raw) Pointer() unsafe.Pointer { return r.ptr }

func (r *Raw) Bytes() []byte {
	if r.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(r.ptr), r.n)
}

func (r *Raw) CopyIn(off int, src []byte) {
	copy(r.Bytes()[off:off+len(src)], src)
}

func (r *Raw) CopyOut(off int, dst []byte) {
	copy(dst, r.Bytes()[off:off+len(dst)])
}

func (r *Raw) Resize(n int) {
	if r.alloc == nil {
		panic(ErrNotOwner)
	}
	if r.freed {
		panic(ErrFreed)
	}
	if n == r.n {
		return
	}
	p, err := r.alloc.Reallocate(r.ptr, r.n, n)
	if err != nil {
		panic(errors.Wrapf(err, "raw store: reallocate %d -> %d bytes", r.n, n))
	}
	r.ptr, r.n = p, n
}

func (r *Raw) Zero(off, n int) {
	zero(r.Bytes()[off : off+n])
}

// Free returns the memory to the allocator. Calling Free twice, or on a
// borrowed store, is a no-op.
func (r *Raw) Free() error {
	if r.alloc == nil || r.freed {
		return nil
	}
	err := r.alloc.Free(r.ptr, r.n)
	r.freed = true
	r.ptr, r.n = nil, 0
	return err
}
