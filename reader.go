package bytestream

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream/pkg/codec"
	"github.com/rawbytedev/bytestream/pkg/store"
)

// Reader reads values from [start, end) of a store. Reads past end fail
// with ErrCapacityExceeded and leave the offset where it was. Not safe for
// concurrent use.
type Reader struct {
	st     store.Store
	buf    []byte // st.Bytes()[:end]
	start  int
	offset int
}

// NewReader reads all of b.
func NewReader(b []byte) (*Reader, error) {
	if b == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil buffer")
	}
	return NewReaderRange(b, 0, len(b))
}

// NewReaderRange reads n bytes of b starting at off. Offsets reported by
// the Reader are relative to the start of b.
func NewReaderRange(b []byte, off, n int) (*Reader, error) {
	if b == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil buffer")
	}
	return NewReaderStore(store.WrapArray(b, false), off, n)
}

// NewReaderStore reads n bytes of st starting at off.
func NewReaderStore(st store.Store, off, n int) (*Reader, error) {
	if st == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil store")
	}
	if off < 0 || n < 0 || off > st.Len()-n {
		return nil, errors.Wrapf(ErrInvalidArgument, "range [%d, %d+%d) outside buffer of %d bytes", off, off, n, st.Len())
	}
	return &Reader{st: st, buf: st.Bytes()[:off+n], start: off, offset: off}, nil
}

// Offset returns the position of the next read.
func (r *Reader) Offset() int { return r.offset }

// Len returns the end of the readable range.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.offset }

// Store returns the backing store.
func (r *Reader) Store() store.Store { return r.st }

func (r *Reader) has(n int) bool { return n <= len(r.buf)-r.offset }

func (r *Reader) ensure(n int) error {
	if r.has(n) {
		return nil
	}
	return overflow("read", n, r.offset, len(r.buf))
}

// Read reads a T from its memory image. T must be blittable.
func Read[T any](r *Reader) (T, error) {
	v, err := Peek[T](r)
	if err != nil {
		return v, err
	}
	r.offset += codec.SizeOf[T]()
	return v, nil
}

// TryRead is Read without the error: ok is false, and nothing changes, when
// fewer than size(T) bytes remain.
func TryRead[T any](r *Reader) (v T, ok bool) {
	codec.MustBlittable[T]()
	n := codec.SizeOf[T]()
	if !r.has(n) {
		return v, false
	}
	v = codec.GetValue[T](r.buf, r.offset)
	r.offset += n
	return v, true
}

// Peek reads a T without advancing.
func Peek[T any](r *Reader) (T, error) {
	codec.MustBlittable[T]()
	if err := r.ensure(codec.SizeOf[T]()); err != nil {
		var zero T
		return zero, err
	}
	return codec.GetValue[T](r.buf, r.offset), nil
}

// ReadBool reads one byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	if err := r.ensure(1); err != nil {
		return false, err
	}
	v := codec.GetBool(r.buf, r.offset)
	r.offset++
	return v, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.ensure(1); err != nil {
		return 0, err
	}
	v := r.buf[r.offset]
	r.offset++
	return v, nil
}

// ReadInt8 reads one byte as a signed value.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadByte()
	return int8(v), err
}

// ReadInt16 reads a native-order int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint16 reads a native-order uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.ensure(2); err != nil {
		return 0, err
	}
	v := codec.GetUint16(r.buf, r.offset)
	r.offset += 2
	return v, nil
}

// ReadInt32 reads a native-order int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads a native-order uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.ensure(4); err != nil {
		return 0, err
	}
	v := codec.GetUint32(r.buf, r.offset)
	r.offset += 4
	return v, nil
}

// ReadInt64 reads a native-order int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadUint64 reads a native-order uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.ensure(8); err != nil {
		return 0, err
	}
	v := codec.GetUint64(r.buf, r.offset)
	r.offset += 8
	return v, nil
}

// ReadFloat32 reads a native-order IEEE 754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	if err := r.ensure(4); err != nil {
		return 0, err
	}
	v := codec.GetFloat32(r.buf, r.offset)
	r.offset += 4
	return v, nil
}

// ReadFloat64 reads a native-order IEEE 754 float64.
func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.ensure(8); err != nil {
		return 0, err
	}
	v := codec.GetFloat64(r.buf, r.offset)
	r.offset += 8
	return v, nil
}

// Read implements io.Reader over the remaining bytes.
func (r *Reader) Read(p []byte) (int, error) {
	if r.Remaining() == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.offset:])
	r.offset += n
	return n, nil
}

// ReadBytes returns a copy of the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "read length %d", n)
	}
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	v := codec.GetBytes(r.buf, r.offset, n)
	r.offset += n
	return v, nil
}

// ReadBytesPrefixed reads a uint16 length followed by that many bytes. If
// the payload is truncated the prefix is not consumed either.
func (r *Reader) ReadBytesPrefixed() ([]byte, error) {
	n, err := r.prefixed(1)
	if err != nil {
		return nil, err
	}
	v := codec.GetBytes(r.buf, r.offset+prefixLen, n)
	r.offset += prefixLen + n
	return v, nil
}

// prefixed peeks a uint16 count and checks that count*unit payload bytes
// follow it.
func (r *Reader) prefixed(unit int) (int, error) {
	if err := r.ensure(prefixLen); err != nil {
		return 0, err
	}
	n := int(codec.GetUint16(r.buf, r.offset))
	if err := r.ensure(prefixLen + n*unit); err != nil {
		return 0, err
	}
	return n, nil
}

// SkipBytes advances past n bytes.
func (r *Reader) SkipBytes(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidArgument, "skip amount %d", n)
	}
	if err := r.ensure(n); err != nil {
		return err
	}
	r.offset += n
	return nil
}

// Clear rewinds to the first readable byte.
func (r *Reader) Clear() {
	r.offset = r.start
}
