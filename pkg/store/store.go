// Package store provides the byte regions cursors read from and write to:
// a managed slice (Array) and a block allocated outside the Go heap (Raw).
package store

import "github.com/pkg/errors"

var (
	// ErrNotOwner is the panic value for resizing a store that does not own its memory.
	ErrNotOwner = errors.New("store does not own its memory and cannot be resized")
	ErrFreed    = errors.New("store memory already released")
	// ErrInvalidSize reports a negative store length.
	ErrInvalidSize = errors.New("invalid store size")
)

// MaxZeroChunk bounds a single clearing step of Zero.
const MaxZeroChunk = 64 << 10

// Store is a contiguous byte region with a fixed base until resized.
// Implementations do not check bounds beyond what slicing enforces;
// callers validate [off, off+n) against Len first.
type Store interface {
	// Len returns the number of addressable bytes.
	Len() int
	// Bytes returns a window over [0, Len()). The window is invalidated by Resize.
	Bytes() []byte
	CopyIn(off int, src []byte)
	CopyOut(off int, dst []byte)
	// Resize changes the length, keeping [0, min(old, n)). It panics with
	// ErrNotOwner when the store does not own its memory.
	Resize(n int)
	Zero(off, n int)
	Owned() bool
}

// zero clears b in chunks of at most MaxZeroChunk bytes.
func zero(b []byte) {
	for len(b) > 0 {
		n := min(len(b), MaxZeroChunk)
		clear(b[:n])
		b = b[n:]
	}
}
