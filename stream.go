package bytestream

import (
	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream/pkg/store"
	"github.com/rawbytedev/bytestream/pkg/text"
)

// Mode is the direction a Stream was last reset into.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeReading
	ModeWriting
)

func (m Mode) String() string {
	switch m {
	case ModeReading:
		return "reading"
	case ModeWriting:
		return "writing"
	default:
		return "none"
	}
}

// Stream reads or writes one buffer depending on its mode, so the same
// sequence of Serialize calls can both encode and decode a structure.
type Stream struct {
	mode Mode
	st   store.Store
	w    Writer
	r    Reader
}

func (s *Stream) Mode() Mode      { return s.mode }
func (s *Stream) IsReading() bool { return s.mode == ModeReading }
func (s *Stream) IsWriting() bool { return s.mode == ModeWriting }

// ResetRead switches to reading the stream's current buffer from offset 0.
// After writing, only the written bytes are readable.
func (s *Stream) ResetRead() error {
	if s.st == nil {
		return ErrNoBuffer
	}
	n := s.st.Len()
	if s.mode == ModeWriting {
		n = s.w.offset
	}
	return s.resetRead(s.st, 0, n)
}

// ResetReadBuffer switches to reading all of b.
func (s *Stream) ResetReadBuffer(b []byte) error {
	if b == nil {
		return errors.Wrap(ErrInvalidArgument, "nil buffer")
	}
	return s.resetRead(store.WrapArray(b, false), 0, len(b))
}

// ResetReadRange switches to reading n bytes of b from off.
func (s *Stream) ResetReadRange(b []byte, off, n int) error {
	if b == nil {
		return errors.Wrap(ErrInvalidArgument, "nil buffer")
	}
	return s.resetRead(store.WrapArray(b, false), off, n)
}

func (s *Stream) resetRead(st store.Store, off, n int) error {
	r, err := NewReaderStore(st, off, n)
	if err != nil {
		return err
	}
	s.st, s.r, s.mode = st, *r, ModeReading
	return nil
}

// ResetWrite switches to writing from offset 0. The current buffer is
// reused when there is one; otherwise a growable DefaultBufferSize buffer is
// allocated.
func (s *Stream) ResetWrite() error {
	if s.st == nil || (s.mode == ModeReading && !s.st.Owned()) {
		return s.ResetWriteSize(DefaultBufferSize, false)
	}
	fixed := s.w.fixed
	if s.mode != ModeWriting {
		fixed = !s.st.Owned()
	}
	s.w, s.mode = *newWriter(s.st, 0, fixed), ModeWriting
	return nil
}

// ResetWriteSize switches to writing into a fresh buffer of n bytes.
func (s *Stream) ResetWriteSize(n int, fixed bool) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidArgument, "initial size %d", n)
	}
	s.st = store.NewArray(n)
	s.w, s.mode = *newWriter(s.st, 0, fixed), ModeWriting
	return nil
}

// ResetWriteBuffer switches to writing into b from offset 0.
func (s *Stream) ResetWriteBuffer(b []byte, fixed bool) error {
	return s.ResetWriteAt(b, 0, fixed)
}

// ResetWriteAt switches to writing into b from offset.
func (s *Stream) ResetWriteAt(b []byte, offset int, fixed bool) error {
	w, err := NewWriterAt(b, offset, fixed)
	if err != nil {
		return err
	}
	s.st, s.w, s.mode = w.st, *w, ModeWriting
	return nil
}

// Writer returns the active writer.
func (s *Stream) Writer() (*Writer, error) {
	if s.mode != ModeWriting {
		return nil, errors.Wrapf(ErrWrongMode, "writer requested while %s", s.mode)
	}
	return &s.w, nil
}

// Reader returns the active reader.
func (s *Stream) Reader() (*Reader, error) {
	if s.mode != ModeReading {
		return nil, errors.Wrapf(ErrWrongMode, "reader requested while %s", s.mode)
	}
	return &s.r, nil
}

// Serialize writes *v when writing and overwrites *v when reading.
func Serialize[T any](s *Stream, v *T) error {
	switch s.mode {
	case ModeWriting:
		return Write(&s.w, *v)
	case ModeReading:
		x, err := Read[T](&s.r)
		if err != nil {
			return err
		}
		*v = x
		return nil
	default:
		return errors.Wrap(ErrWrongMode, "serialize before reset")
	}
}

// SerializeBytes handles a uint16-prefixed byte slice in either mode.
func (s *Stream) SerializeBytes(v *[]byte) error {
	switch s.mode {
	case ModeWriting:
		return s.w.WriteBytes(*v, true)
	case ModeReading:
		b, err := s.r.ReadBytesPrefixed()
		if err != nil {
			return err
		}
		*v = b
		return nil
	default:
		return errors.Wrap(ErrWrongMode, "serialize before reset")
	}
}

// SerializeString handles an encoded string in either mode.
func (s *Stream) SerializeString(v *string, enc text.Encoding) error {
	switch s.mode {
	case ModeWriting:
		return s.w.WriteString(*v, enc)
	case ModeReading:
		str, err := s.r.ReadString(enc)
		if err != nil {
			return err
		}
		*v = str
		return nil
	default:
		return errors.Wrap(ErrWrongMode, "serialize before reset")
	}
}

// SerializeUTF16 handles a prefixed fixed-width UTF-16 string in either mode.
func (s *Stream) SerializeUTF16(v *string) error {
	switch s.mode {
	case ModeWriting:
		return s.w.WriteUTF16(*v, true)
	case ModeReading:
		str, err := s.r.ReadUTF16()
		if err != nil {
			return err
		}
		*v = str
		return nil
	default:
		return errors.Wrap(ErrWrongMode, "serialize before reset")
	}
}

// SkipBytes advances the active cursor by n bytes.
func (s *Stream) SkipBytes(n int) error {
	switch s.mode {
	case ModeWriting:
		return s.w.SkipBytes(n)
	case ModeReading:
		return s.r.SkipBytes(n)
	default:
		return errors.Wrap(ErrWrongMode, "skip before reset")
	}
}

// ReserveSizePrefix reserves the frame size slot; writing only.
func (s *Stream) ReserveSizePrefix() error {
	w, err := s.Writer()
	if err != nil {
		return err
	}
	return w.ReserveSizePrefix()
}

// PrefixSize backpatches the frame size slot; writing only.
func (s *Stream) PrefixSize() (int, error) {
	w, err := s.Writer()
	if err != nil {
		return 0, err
	}
	return w.PrefixSize()
}

// Offset returns the active cursor's offset.
func (s *Stream) Offset() int {
	switch s.mode {
	case ModeWriting:
		return s.w.offset
	case ModeReading:
		return s.r.offset
	default:
		return 0
	}
}

// Len returns the capacity when writing, or the readable end when reading.
func (s *Stream) Len() int {
	switch s.mode {
	case ModeWriting:
		return s.w.Len()
	case ModeReading:
		return s.r.Len()
	default:
		return 0
	}
}

// Bytes returns the written bytes, or the whole readable range.
func (s *Stream) Bytes() []byte {
	switch s.mode {
	case ModeWriting:
		return s.w.Bytes()
	case ModeReading:
		return s.r.buf[s.r.start:]
	default:
		return nil
	}
}

// CopyTo copies the first length written bytes into dst at dstIndex.
func (s *Stream) CopyTo(dst []byte, dstIndex, length int) error {
	w, err := s.Writer()
	if err != nil {
		return err
	}
	return w.CopyTo(dst, dstIndex, length)
}
