package bytestream

import (
	"math"

	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream/internal/common"
	"github.com/rawbytedev/bytestream/pkg/codec"
	"github.com/rawbytedev/bytestream/pkg/store"
)

// Writer writes values at an offset that only moves forward until Clear.
// A growable Writer reallocates its store to the next power of two when a
// write does not fit; a fixed-size Writer fails with ErrCapacityExceeded and
// leaves both offset and contents untouched. Not safe for concurrent use.
type Writer struct {
	st     store.Store
	buf    []byte // st.Bytes(), refreshed after every resize
	offset int
	fixed  bool
	owns   bool // st came from Options.Allocator and is released by Free
}

// NewWriter creates a Writer over a fresh buffer of opts.InitialSize bytes.
func NewWriter(opts Options) (*Writer, error) {
	if opts.InitialSize < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "initial size %d", opts.InitialSize)
	}
	if opts.Allocator == nil {
		return newWriter(store.NewArray(opts.InitialSize), 0, opts.FixedSize), nil
	}
	raw, err := store.NewRaw(opts.Allocator, opts.InitialSize)
	if err != nil {
		return nil, errors.Wrap(err, "allocate writer buffer")
	}
	w := newWriter(raw, 0, opts.FixedSize)
	w.owns = true
	return w, nil
}

// NewWriterBuffer writes into b starting at offset 0. A growable writer
// replaces b with a larger slice once it outgrows it; use Bytes to get the
// result.
func NewWriterBuffer(b []byte, fixed bool) (*Writer, error) {
	return NewWriterAt(b, 0, fixed)
}

// NewWriterAt writes into b starting at offset.
func NewWriterAt(b []byte, offset int, fixed bool) (*Writer, error) {
	if b == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil buffer")
	}
	if offset < 0 || offset > len(b) {
		return nil, errors.Wrapf(ErrInvalidArgument, "offset %d outside buffer of %d bytes", offset, len(b))
	}
	return newWriter(store.WrapArray(b, !fixed), offset, fixed), nil
}

// NewWriterStore writes into st. A store that does not own its memory
// always yields a fixed-size writer. The caller keeps ownership of st.
func NewWriterStore(st store.Store, fixed bool) (*Writer, error) {
	if st == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil store")
	}
	return newWriter(st, 0, fixed || !st.Owned()), nil
}

func newWriter(st store.Store, offset int, fixed bool) *Writer {
	return &Writer{st: st, buf: st.Bytes(), offset: offset, fixed: fixed}
}

// Offset returns the number of bytes written since the last Clear.
func (w *Writer) Offset() int { return w.offset }

// Len returns the current capacity.
func (w *Writer) Len() int { return len(w.buf) }

// IsFixedSize reports whether writes fail instead of growing the buffer.
func (w *Writer) IsFixedSize() bool { return w.fixed }

// Store returns the backing store.
func (w *Writer) Store() store.Store { return w.st }

// Bytes returns the written region [0, Offset). It aliases the store and is
// invalidated by the next growth or Resize.
func (w *Writer) Bytes() []byte { return w.buf[:w.offset] }

func (w *Writer) fits(n int) bool { return n <= len(w.buf)-w.offset }

func (w *Writer) ensure(n int) error {
	if w.fits(n) {
		return nil
	}
	if w.fixed || n > math.MaxInt-w.offset {
		return overflow("write", n, w.offset, len(w.buf))
	}
	size, ok := common.NextPowerOfTwo(w.offset + n)
	if !ok {
		return overflow("write", n, w.offset, len(w.buf))
	}
	w.resize(size)
	return nil
}

func (w *Writer) resize(n int) {
	w.st.Resize(n)
	w.buf = w.st.Bytes()
}

// Write appends the memory image of v. T must be blittable (see
// codec.Blittable); anything else panics.
func Write[T any](w *Writer, v T) error {
	codec.MustBlittable[T]()
	n := codec.SizeOf[T]()
	if err := w.ensure(n); err != nil {
		return err
	}
	codec.PutValue(w.buf, w.offset, v)
	w.offset += n
	return nil
}

// TryWrite writes v only if it fits in the current capacity. It never grows
// the buffer and changes nothing when it returns false.
func TryWrite[T any](w *Writer, v T) bool {
	codec.MustBlittable[T]()
	n := codec.SizeOf[T]()
	if !w.fits(n) {
		return false
	}
	codec.PutValue(w.buf, w.offset, v)
	w.offset += n
	return true
}

// WriteBool writes v as one byte, 1 or 0.
func (w *Writer) WriteBool(v bool) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	codec.PutBool(w.buf, w.offset, v)
	w.offset++
	return nil
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(v byte) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf[w.offset] = v
	w.offset++
	return nil
}

// WriteInt8 writes v as one byte.
func (w *Writer) WriteInt8(v int8) error { return w.WriteByte(byte(v)) }

// WriteInt16 writes v in native byte order.
func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

// WriteUint16 writes v in native byte order.
func (w *Writer) WriteUint16(v uint16) error {
	if err := w.ensure(2); err != nil {
		return err
	}
	codec.PutUint16(w.buf, w.offset, v)
	w.offset += 2
	return nil
}

// WriteInt32 writes v in native byte order.
func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

// WriteUint32 writes v in native byte order.
func (w *Writer) WriteUint32(v uint32) error {
	if err := w.ensure(4); err != nil {
		return err
	}
	codec.PutUint32(w.buf, w.offset, v)
	w.offset += 4
	return nil
}

// WriteInt64 writes v in native byte order.
func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

// WriteUint64 writes v in native byte order.
func (w *Writer) WriteUint64(v uint64) error {
	if err := w.ensure(8); err != nil {
		return err
	}
	codec.PutUint64(w.buf, w.offset, v)
	w.offset += 8
	return nil
}

// WriteFloat32 writes the IEEE 754 bits of v in native byte order.
func (w *Writer) WriteFloat32(v float32) error {
	if err := w.ensure(4); err != nil {
		return err
	}
	codec.PutFloat32(w.buf, w.offset, v)
	w.offset += 4
	return nil
}

// WriteFloat64 writes the IEEE 754 bits of v in native byte order.
func (w *Writer) WriteFloat64(v float64) error {
	if err := w.ensure(8); err != nil {
		return err
	}
	codec.PutFloat64(w.buf, w.offset, v)
	w.offset += 8
	return nil
}

// Write copies p without a length prefix, implementing io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.ensure(len(p)); err != nil {
		return 0, err
	}
	n := codec.PutBytes(w.buf, w.offset, p)
	w.offset += n
	return n, nil
}

// WriteBytes copies b, preceded by its length as a uint16 when prefixed is
// set. Capacity for prefix and payload is secured before anything is written.
func (w *Writer) WriteBytes(b []byte, prefixed bool) error {
	if !prefixed {
		_, err := w.Write(b)
		return err
	}
	if len(b) > MaxPrefixedLength {
		return errors.Wrapf(ErrEncodingLimit, "byte slice of %d bytes", len(b))
	}
	if err := w.ensure(prefixLen + len(b)); err != nil {
		return err
	}
	codec.PutUint16(w.buf, w.offset, uint16(len(b)))
	codec.PutBytes(w.buf, w.offset+prefixLen, b)
	w.offset += prefixLen + len(b)
	return nil
}

// SkipBytes reserves n bytes without writing them.
func (w *Writer) SkipBytes(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidArgument, "skip amount %d", n)
	}
	if err := w.ensure(n); err != nil {
		return err
	}
	w.offset += n
	return nil
}

// ReserveSizePrefix reserves SizePrefixLen bytes at the start of the buffer
// for PrefixSize to fill in once the body is written.
func (w *Writer) ReserveSizePrefix() error {
	if w.offset != 0 {
		return errors.Wrapf(ErrInvalidArgument, "size prefix must start the buffer, offset is %d", w.offset)
	}
	return w.SkipBytes(SizePrefixLen)
}

// PrefixSize stores the current offset as an int32 in the slot reserved by
// ReserveSizePrefix and returns it. Offsets above math.MaxInt32 fail with
// ErrEncodingLimit.
func (w *Writer) PrefixSize() (int, error) {
	if w.offset < SizePrefixLen {
		return 0, errors.Wrapf(ErrInvalidArgument, "no size prefix reserved, offset is %d", w.offset)
	}
	if w.offset > math.MaxInt32 {
		return 0, errors.Wrapf(ErrEncodingLimit, "size %d does not fit the int32 prefix", w.offset)
	}
	codec.PutInt32(w.buf, 0, int32(w.offset))
	return w.offset, nil
}

// Resize sets the capacity to exactly n bytes. Only growable writers over an
// owning store may resize, and never below the written offset.
func (w *Writer) Resize(n int) error {
	if w.fixed || !w.st.Owned() {
		return errors.Wrapf(ErrFixedSize, "resize to %d", n)
	}
	if n < w.offset {
		return errors.Wrapf(ErrInvalidArgument, "resize to %d below offset %d", n, w.offset)
	}
	w.resize(n)
	return nil
}

// Trim shrinks the capacity to the written offset.
func (w *Writer) Trim() error {
	return w.Resize(w.offset)
}

// Clear rewinds to offset 0 without touching capacity or contents.
func (w *Writer) Clear() {
	w.offset = 0
}

// ZeroFill clears the written bytes and rewinds to offset 0.
func (w *Writer) ZeroFill() {
	w.st.Zero(0, w.offset)
	w.offset = 0
}

// CopyTo copies the first length written bytes into dst at dstIndex.
func (w *Writer) CopyTo(dst []byte, dstIndex, length int) error {
	if dst == nil {
		return errors.Wrap(ErrInvalidArgument, "nil destination")
	}
	if length < 0 || length > w.offset {
		return errors.Wrapf(ErrInvalidArgument, "copy length %d, written %d", length, w.offset)
	}
	if dstIndex < 0 || dstIndex > len(dst)-length {
		return errors.Wrapf(ErrInvalidArgument, "copy of %d bytes at index %d exceeds destination of %d", length, dstIndex, len(dst))
	}
	w.st.CopyOut(0, dst[dstIndex:dstIndex+length])
	return nil
}

// Free releases memory the writer obtained from Options.Allocator. It is a
// no-op for stores supplied by the caller. The writer must not be used
// afterwards.
func (w *Writer) Free() error {
	raw, ok := w.st.(*store.Raw)
	if !ok || !w.owns {
		return nil
	}
	w.buf, w.offset = nil, 0
	return raw.Free()
}
