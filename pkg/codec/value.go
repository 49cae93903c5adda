package codec

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream/internal/common"
)

// ErrNotBlittable is the panic value, wrapped with the type name, for
// transmuting a type that holds pointers or padding.
var ErrNotBlittable = errors.New("type is not blittable")

var blittable sync.Map // reflect.Type -> bool

// Blittable reports whether T can be reinterpreted as raw bytes. The
// result is computed once per type.
func Blittable[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if ok, hit := blittable.Load(t); hit {
		return ok.(bool)
	}
	ok := common.IsBlittable(t)
	blittable.Store(t, ok)
	return ok
}

// MustBlittable panics with ErrNotBlittable unless T is blittable.
func MustBlittable[T any]() {
	if !Blittable[T]() {
		panic(errors.Wrapf(ErrNotBlittable, "%s", reflect.TypeOf((*T)(nil)).Elem()))
	}
}

// SizeOf returns the encoded width of T.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// PutValue writes the memory image of v at off. T must be blittable.
func PutValue[T any](b []byte, off int, v T) {
	MustBlittable[T]()
	n := SizeOf[T]()
	if n == 0 {
		return
	}
	copy(b[off:off+n], unsafe.Slice((*byte)(unsafe.Pointer(&v)), n))
}

// GetValue reads a T from its memory image at off. T must be blittable.
func GetValue[T any](b []byte, off int) T {
	MustBlittable[T]()
	var v T
	n := SizeOf[T]()
	if n == 0 {
		return v
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), n), b[off:off+n])
	return v
}
