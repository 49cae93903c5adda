package store

import (
	"runtime"
	"unsafe"
)

// Pin keeps b's backing array in place while fn runs and releases it on
// every exit path, panics included. fn receives nil for an empty slice and
// must not retain the pointer.
func Pin(b []byte, fn func(p unsafe.Pointer) error) error {
	if len(b) == 0 {
		return fn(nil)
	}
	var pinner runtime.Pinner
	pinner.Pin(unsafe.SliceData(b))
	defer pinner.Unpin()
	return fn(unsafe.Pointer(unsafe.SliceData(b)))
}

// WithPinned exposes b through a borrowed Raw store for the duration of fn.
func WithPinned(b []byte, fn func(r *Raw) error) error {
	return Pin(b, func(p unsafe.Pointer) error {
		return fn(WrapRaw(p, len(b)))
	})
}
