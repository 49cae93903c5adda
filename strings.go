package bytestream

import (
	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream/pkg/codec"
	"github.com/rawbytedev/bytestream/pkg/text"
)

// WriteANSI writes one byte per rune of s (its low 8 bits), preceded by the
// character count as a uint16 when prefixed is set.
func (w *Writer) WriteANSI(s string, prefixed bool) error {
	n := text.ANSILen(s)
	return w.writeFixedWidth(n, n*text.ANSIUnit, prefixed, func(off int) {
		text.PutANSI(w.buf, off, s)
	})
}

// WriteUTF16 writes s as native-order UTF-16 code units, preceded by the
// code unit count as a uint16 when prefixed is set.
func (w *Writer) WriteUTF16(s string, prefixed bool) error {
	n := text.UTF16Len(s)
	return w.writeFixedWidth(n, n*text.UTF16Unit, prefixed, func(off int) {
		text.PutUTF16(w.buf, off, s)
	})
}

func (w *Writer) writeFixedWidth(count, size int, prefixed bool, put func(off int)) error {
	head := 0
	if prefixed {
		if count > MaxPrefixedLength {
			return errors.Wrapf(ErrEncodingLimit, "string of %d characters", count)
		}
		head = prefixLen
	}
	if err := w.ensure(head + size); err != nil {
		return err
	}
	if prefixed {
		codec.PutUint16(w.buf, w.offset, uint16(count))
	}
	put(w.offset + head)
	w.offset += head + size
	return nil
}

// WriteString encodes s with enc and writes the encoded byte length as a
// uint16 followed by the bytes.
func (w *Writer) WriteString(s string, enc text.Encoding) error {
	n, err := enc.ByteCount(s)
	if err != nil {
		return errors.Wrap(err, "count encoded bytes")
	}
	if n > MaxPrefixedLength {
		return errors.Wrapf(ErrEncodingLimit, "%s string of %d bytes", enc.Name(), n)
	}
	if err := w.ensure(prefixLen + n); err != nil {
		return err
	}
	if _, err := enc.Encode(w.buf[w.offset+prefixLen:w.offset+prefixLen+n], s); err != nil {
		return errors.Wrap(err, "encode string")
	}
	codec.PutUint16(w.buf, w.offset, uint16(n))
	w.offset += prefixLen + n
	return nil
}

// ReadANSI reads a uint16 character count followed by that many ANSI characters.
func (r *Reader) ReadANSI() (string, error) {
	n, err := r.prefixed(text.ANSIUnit)
	if err != nil {
		return "", err
	}
	s := text.GetANSI(r.buf, r.offset+prefixLen, n)
	r.offset += prefixLen + n*text.ANSIUnit
	return s, nil
}

// ReadANSIN reads count ANSI characters with no prefix.
func (r *Reader) ReadANSIN(count int) (string, error) {
	if err := r.fixedWidth(count, text.ANSIUnit); err != nil {
		return "", err
	}
	s := text.GetANSI(r.buf, r.offset, count)
	r.offset += count * text.ANSIUnit
	return s, nil
}

// ReadUTF16 reads a uint16 code unit count followed by that many UTF-16 code units.
func (r *Reader) ReadUTF16() (string, error) {
	n, err := r.prefixed(text.UTF16Unit)
	if err != nil {
		return "", err
	}
	s := text.GetUTF16(r.buf, r.offset+prefixLen, n)
	r.offset += prefixLen + n*text.UTF16Unit
	return s, nil
}

// ReadUTF16N reads count UTF-16 code units with no prefix.
func (r *Reader) ReadUTF16N(count int) (string, error) {
	if err := r.fixedWidth(count, text.UTF16Unit); err != nil {
		return "", err
	}
	s := text.GetUTF16(r.buf, r.offset, count)
	r.offset += count * text.UTF16Unit
	return s, nil
}

func (r *Reader) fixedWidth(count, unit int) error {
	if count < 0 {
		return errors.Wrapf(ErrInvalidArgument, "string length %d", count)
	}
	if count > r.Remaining()/unit {
		return overflow("read", count, r.offset, len(r.buf))
	}
	return nil
}

// ReadString reads a uint16 byte length and decodes that many bytes with enc.
func (r *Reader) ReadString(enc text.Encoding) (string, error) {
	n, err := r.prefixed(1)
	if err != nil {
		return "", err
	}
	s, err := enc.Decode(r.buf[r.offset+prefixLen : r.offset+prefixLen+n])
	if err != nil {
		return "", errors.Wrap(err, "decode string")
	}
	r.offset += prefixLen + n
	return s, nil
}
