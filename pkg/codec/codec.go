// Package codec reinterprets fixed-size values as bytes and back, in the
// host's native byte order. Nothing here checks bounds beyond what slice
// indexing enforces: callers validate off+size against len(b) first.
package codec

import (
	"encoding/binary"
	"math"
)

var ne = binary.NativeEndian

// PutBool stores v as 1 or 0.
func PutBool(b []byte, off int, v bool) {
	if v {
		b[off] = 1
	} else {
		b[off] = 0
	}
}

// GetBool reports whether the byte at off is non-zero.
func GetBool(b []byte, off int) bool { return b[off] != 0 }

// PutUint8 stores v at off.
func PutUint8(b []byte, off int, v uint8) { b[off] = v }

// GetUint8 returns the byte at off.
func GetUint8(b []byte, off int) uint8 { return b[off] }

// PutInt8 stores v at off.
func PutInt8(b []byte, off int, v int8) { b[off] = byte(v) }

// GetInt8 returns the byte at off as a signed value.
func GetInt8(b []byte, off int) int8 { return int8(b[off]) }

// PutUint16 stores v at off in native byte order.
func PutUint16(b []byte, off int, v uint16) { ne.PutUint16(b[off:], v) }

// GetUint16 reads a native-order uint16 at off.
func GetUint16(b []byte, off int) uint16 { return ne.Uint16(b[off:]) }

// PutInt16 stores v at off in native byte order.
func PutInt16(b []byte, off int, v int16) { ne.PutUint16(b[off:], uint16(v)) }

// GetInt16 reads a native-order int16 at off.
func GetInt16(b []byte, off int) int16 { return int16(ne.Uint16(b[off:])) }

// PutUint32 stores v at off in native byte order.
func PutUint32(b []byte, off int, v uint32) { ne.PutUint32(b[off:], v) }

// GetUint32 reads a native-order uint32 at off.
func GetUint32(b []byte, off int) uint32 { return ne.Uint32(b[off:]) }

// PutInt32 stores v at off in native byte order.
func PutInt32(b []byte, off int, v int32) { ne.PutUint32(b[off:], uint32(v)) }

// GetInt32 reads a native-order int32 at off.
func GetInt32(b []byte, off int) int32 { return int32(ne.Uint32(b[off:])) }

// PutUint64 stores v at off in native byte order.
func PutUint64(b []byte, off int, v uint64) { ne.PutUint64(b[off:], v) }

// GetUint64 reads a native-order uint64 at off.
func GetUint64(b []byte, off int) uint64 { return ne.Uint64(b[off:]) }

// PutInt64 stores v at off in native byte order.
func PutInt64(b []byte, off int, v int64) { ne.PutUint64(b[off:], uint64(v)) }

// GetInt64 reads a native-order int64 at off.
func GetInt64(b []byte, off int) int64 { return int64(ne.Uint64(b[off:])) }

// PutFloat32 stores the IEEE 754 bits of v at off.
func PutFloat32(b []byte, off int, v float32) { ne.PutUint32(b[off:], math.Float32bits(v)) }

// GetFloat32 reads an IEEE 754 float32 at off.
func GetFloat32(b []byte, off int) float32 { return math.Float32frombits(ne.Uint32(b[off:])) }

// PutFloat64 stores the IEEE 754 bits of v at off.
func PutFloat64(b []byte, off int, v float64) { ne.PutUint64(b[off:], math.Float64bits(v)) }

// GetFloat64 reads an IEEE 754 float64 at off.
func GetFloat64(b []byte, off int) float64 { return math.Float64frombits(ne.Uint64(b[off:])) }

// PutComplex64 stores the real part followed by the imaginary part.
func PutComplex64(b []byte, off int, v complex64) {
	PutFloat32(b, off, real(v))
	PutFloat32(b, off+4, imag(v))
}

// GetComplex64 reads a value stored by PutComplex64.
func GetComplex64(b []byte, off int) complex64 {
	return complex(GetFloat32(b, off), GetFloat32(b, off+4))
}

// PutComplex128 stores the real part followed by the imaginary part.
func PutComplex128(b []byte, off int, v complex128) {
	PutFloat64(b, off, real(v))
	PutFloat64(b, off+8, imag(v))
}

// GetComplex128 reads a value stored by PutComplex128.
func GetComplex128(b []byte, off int) complex128 {
	return complex(GetFloat64(b, off), GetFloat64(b, off+8))
}

// PutBytes copies src into b at off.
func PutBytes(b []byte, off int, src []byte) int {
	return copy(b[off:off+len(src)], src)
}

// GetBytes returns a copy of n bytes at off.
func GetBytes(b []byte, off, n int) []byte {
	out := make([]byte, n)
	copy(out, b[off:off+n])
	return out
}

// ViewBytes aliases n bytes at off without copying. The view is only valid
// until the underlying store is resized or released.
func ViewBytes(b []byte, off, n int) []byte {
	return b[off : off+n : off+n]
}
