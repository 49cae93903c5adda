package frame

import (
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream"
	"github.com/rawbytedev/bytestream/pkg/codec"
)

// Option configures an Encoder.
type Option func(*Encoder) error

// WithZstd compresses every body at the given level.
func WithZstd(level zstd.EncoderLevel) Option {
	return func(e *Encoder) error {
		z, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(level),
			zstd.WithEncoderConcurrency(1))
		if err != nil {
			return errors.Wrap(err, "zstd encoder")
		}
		e.zenc, e.flags = z, e.flags|FlagZstd
		return nil
	}
}

// WithBufferSize sets the initial size of the frame buffer.
func WithBufferSize(n int) Option {
	return func(e *Encoder) error {
		w, err := bytestream.NewWriter(bytestream.Options{InitialSize: n})
		if err != nil {
			return err
		}
		e.w = w
		return nil
	}
}

// Encoder builds frames into one reusable buffer. Not safe for concurrent use.
type Encoder struct {
	w       *bytestream.Writer
	zenc    *zstd.Encoder
	flags   byte
	scratch []byte
}

// NewEncoder applies opts in order. Without WithBufferSize the buffer
// starts at the default writer size.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.w == nil {
		w, err := bytestream.NewWriter(bytestream.DefaultOptions())
		if err != nil {
			return nil, err
		}
		e.w = w
	}
	return e, nil
}

// Encode returns the frame for body. The result aliases the encoder's
// buffer and is valid until the next call.
func (e *Encoder) Encode(kind uint16, body []byte) ([]byte, error) {
	payload := body
	if e.zenc != nil {
		e.scratch = e.zenc.EncodeAll(body, e.scratch[:0])
		payload = e.scratch
	}

	w := e.w
	w.Clear()
	if err := w.ReserveSizePrefix(); err != nil {
		return nil, err
	}
	if err := w.WriteByte(e.flags); err != nil {
		return nil, err
	}
	if err := w.WriteUint16(kind); err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.SkipBytes(trailerLen); err != nil {
		return nil, err
	}
	n, err := w.PrefixSize()
	if err != nil {
		return nil, err
	}
	out := w.Bytes()
	codec.PutUint32(out, n-trailerLen, crc32.ChecksumIEEE(out[lengthLen:n-trailerLen]))
	return out, nil
}

// EncodeTo writes the frame for body to dst.
func (e *Encoder) EncodeTo(dst io.Writer, kind uint16, body []byte) (int, error) {
	out, err := e.Encode(kind, body)
	if err != nil {
		return 0, err
	}
	return dst.Write(out)
}

// Close releases the zstd encoder, if any.
func (e *Encoder) Close() error {
	if e.zenc != nil {
		return e.zenc.Close()
	}
	return nil
}
