package frame

import (
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/rawbytedev/bytestream"
)

// Decoder validates frames and inflates compressed bodies.
type Decoder struct {
	zdec *zstd.Decoder
}

// NewDecoder creates a Decoder whose inflated bodies are limited to
// maxBody bytes; zero means the zstd default.
func NewDecoder(maxBody uint64) (*Decoder, error) {
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if maxBody > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(maxBody))
	}
	z, err := zstd.NewReader(nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "zstd decoder")
	}
	return &Decoder{zdec: z}, nil
}

// Decode checks length, checksum and flags, in that order. An uncompressed
// body is a copy of the frame bytes.
func (d *Decoder) Decode(data []byte) (Frame, error) {
	if len(data) < MinLen {
		return Frame{}, errors.Wrapf(ErrShortFrame, "%d bytes", len(data))
	}
	r, err := bytestream.NewReader(data)
	if err != nil {
		return Frame{}, err
	}
	length, err := r.ReadInt32()
	if err != nil {
		return Frame{}, err
	}
	if int(length) != len(data) {
		return Frame{}, errors.Wrapf(ErrLengthMismatch, "prefix %d, frame %d", length, len(data))
	}

	end := len(data) - trailerLen
	tail, err := bytestream.NewReaderRange(data, end, trailerLen)
	if err != nil {
		return Frame{}, err
	}
	want, err := tail.ReadUint32()
	if err != nil {
		return Frame{}, err
	}
	if got := crc32.ChecksumIEEE(data[lengthLen:end]); got != want {
		return Frame{}, errors.Wrapf(ErrChecksum, "got %08x, want %08x", got, want)
	}

	f := Frame{Length: len(data)}
	if f.Flags, err = r.ReadByte(); err != nil {
		return Frame{}, err
	}
	if f.Flags&^knownFlags != 0 {
		return Frame{}, errors.Wrapf(ErrUnknownFlags, "%#02x", f.Flags)
	}
	if f.Kind, err = r.ReadUint16(); err != nil {
		return Frame{}, err
	}
	if f.Body, err = r.ReadBytes(end - headerLen); err != nil {
		return Frame{}, err
	}
	if f.Compressed() {
		if f.Body, err = d.zdec.DecodeAll(f.Body, nil); err != nil {
			return Frame{}, errors.Wrap(err, "inflate body")
		}
	}
	return f, nil
}

// Close releases the zstd decoder. The Decoder is unusable afterwards.
func (d *Decoder) Close() {
	d.zdec.Close()
}
