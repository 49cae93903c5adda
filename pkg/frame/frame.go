// Package frame wraps a body in a size-prefixed, checksummed envelope:
//
//	[int32 total length][byte flags][uint16 kind][body][uint32 CRC32]
//
// The length covers the whole frame including the checksum. The CRC is
// CRC32-IEEE over everything between the length and the checksum. Integers
// use the host byte order, like the rest of the bytestream wire format.
package frame

import "github.com/pkg/errors"

const (
	// FlagZstd marks a body compressed with zstd.
	FlagZstd byte = 1 << iota

	knownFlags = FlagZstd
)

const (
	lengthLen  = 4
	headerLen  = lengthLen + 1 + 2
	trailerLen = 4
	// MinLen is the size of a frame with an empty body.
	MinLen = headerLen + trailerLen
)

// Decode errors. Callers match them with errors.Is.
var (
	ErrShortFrame     = errors.New("frame shorter than its header")
	ErrLengthMismatch = errors.New("frame length does not match its prefix")
	ErrChecksum       = errors.New("frame checksum mismatch")
	ErrUnknownFlags   = errors.New("frame carries unknown flags")
)

// Frame is a decoded frame.
type Frame struct {
	Length int
	Flags  byte
	Kind   uint16
	Body   []byte
}

// Compressed reports whether the body was stored zstd-compressed.
func (f Frame) Compressed() bool { return f.Flags&FlagZstd != 0 }
