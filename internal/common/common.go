package common

import (
	"math/bits"
	"reflect"
	"unsafe"
)

const maxPowerOfTwo = 1 << (bits.UintSize - 2)

// IsFixedKind reports whether k is a fixed-size primitive kind.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// IsBlittable reports whether values of t can be copied byte for byte:
// fixed kinds, arrays of blittable elements, and structs of blittable
// fields laid out without padding. int, uint and uintptr are rejected since
// their width depends on the platform.
func IsBlittable(t reflect.Type) bool {
	k := t.Kind()
	if IsFixedKind(k) {
		return true
	}
	switch k {
	case reflect.Array:
		return IsBlittable(t.Elem())
	case reflect.Struct:
		var next uintptr
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.Offset != next || !IsBlittable(sf.Type) {
				return false
			}
			next = sf.Offset + sf.Type.Size()
		}
		// trailing padding
		return next == t.Size()
	default:
		return false
	}
}

// NextPowerOfTwo returns the smallest power of two >= n. n <= 1 yields 1.
// ok is false when that power does not fit in an int.
func NextPowerOfTwo(n int) (p int, ok bool) {
	if n <= 1 {
		return 1, true
	}
	if n > maxPowerOfTwo {
		return 0, false
	}
	return 1 << bits.Len(uint(n-1)), true
}

// StringToBytes aliases s as a byte slice. The result must not be modified.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// BytesToString aliases b as a string. b must not change while the string is in use.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
