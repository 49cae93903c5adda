package store

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T, n int) map[string]Store {
	t.Helper()
	mm, err := NewRaw(DefaultAllocator(), n)
	require.NoError(t, err)
	heap, err := NewRaw(NewHeapAllocator(), n)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mm.Free())
		assert.NoError(t, heap.Free())
	})
	return map[string]Store{
		"array": NewArray(n),
		"mmap":  mm,
		"heap":  heap,
	}
}

func TestStore_CopyInOut(t *testing.T) {
	for name, s := range stores(t, 16) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			require.Equal(16, s.Len())
			require.True(s.Owned())

			s.CopyIn(3, []byte{1, 2, 3, 4})
			out := make([]byte, 4)
			s.CopyOut(3, out)
			require.Equal([]byte{1, 2, 3, 4}, out)
			require.Equal([]byte{0, 0, 0, 1, 2, 3, 4, 0}, s.Bytes()[:8])
		})
	}
}

func TestStore_ResizePreservesPrefix(t *testing.T) {
	for name, s := range stores(t, 8) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			s.CopyIn(0, []byte{9, 8, 7, 6, 5, 4, 3, 2})

			s.Resize(4096)
			require.Equal(4096, s.Len())
			require.Equal([]byte{9, 8, 7, 6, 5, 4, 3, 2}, s.Bytes()[:8])

			s.Resize(3)
			require.Equal(3, s.Len())
			require.Equal([]byte{9, 8, 7}, s.Bytes())
		})
	}
}

func TestStore_Zero(t *testing.T) {
	n := MaxZeroChunk*2 + 17
	for name, s := range stores(t, n) {
		t.Run(name, func(t *testing.T) {
			b := s.Bytes()
			for i := range b {
				b[i] = 0xFF
			}
			s.Zero(1, n-2)
			require.Equal(t, byte(0xFF), b[0])
			require.Equal(t, byte(0xFF), b[n-1])
			for i := 1; i < n-1; i++ {
				if b[i] != 0 {
					t.Fatalf("byte %d not cleared", i)
				}
			}
		})
	}
}

func TestStore_BorrowedCannotResize(t *testing.T) {
	a := WrapArray(make([]byte, 4), false)
	require.False(t, a.Owned())
	require.PanicsWithValue(t, ErrNotOwner, func() { a.Resize(8) })

	buf := make([]byte, 4)
	r := WrapRaw(unsafe.Pointer(&buf[0]), len(buf))
	require.False(t, r.Owned())
	require.PanicsWithValue(t, ErrNotOwner, func() { r.Resize(8) })
	require.NoError(t, r.Free())
}

func TestRaw_FreeTwice(t *testing.T) {
	h := NewHeapAllocator()
	r, err := NewRaw(h, 32)
	require.NoError(t, err)
	require.Equal(t, 1, h.Live())
	require.NoError(t, r.Free())
	require.NoError(t, r.Free())
	require.Equal(t, 0, h.Live())
	require.Nil(t, r.Bytes())
	require.PanicsWithValue(t, ErrFreed, func() { r.Resize(8) })
}

func TestRaw_ZeroSize(t *testing.T) {
	r, err := NewRaw(DefaultAllocator(), 0)
	require.NoError(t, err)
	require.Nil(t, r.Bytes())
	r.Resize(10)
	require.Equal(t, 10, r.Len())
	require.NoError(t, r.Free())
}

func TestHeapAllocator_UnknownBlock(t *testing.T) {
	h := NewHeapAllocator()
	var x [4]byte
	require.ErrorIs(t, h.Free(unsafe.Pointer(&x[0]), 4), ErrUnknownBlock)
	_, err := h.Reallocate(unsafe.Pointer(&x[0]), 4, 8)
	require.ErrorIs(t, err, ErrUnknownBlock)
}

func TestPin_ReleasesOnPanic(t *testing.T) {
	b := []byte{1, 2, 3}
	require.Panics(t, func() {
		_ = Pin(b, func(p unsafe.Pointer) error { panic("boom") })
	})
	// pinning again after the panic must succeed
	require.NoError(t, Pin(b, func(p unsafe.Pointer) error {
		require.Equal(t, byte(1), *(*byte)(p))
		return nil
	}))
}

func TestWithPinned(t *testing.T) {
	b := make([]byte, 8)
	err := WithPinned(b, func(r *Raw) error {
		require.Equal(t, 8, r.Len())
		r.CopyIn(2, []byte{0xAB})
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b[2])

	require.NoError(t, WithPinned(nil, func(r *Raw) error {
		require.Equal(t, 0, r.Len())
		return nil
	}))
}

func TestRaw_NegativeSize(t *testing.T) {
	h := NewHeapAllocator()
	_, err := NewRaw(h, -1)
	require.ErrorIs(t, err, ErrInvalidSize)
	require.Equal(t, 0, h.Live())
}
