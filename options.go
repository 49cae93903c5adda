package bytestream

import (
	"math"

	"github.com/rawbytedev/bytestream/pkg/store"
)

const (
	// DefaultBufferSize is the capacity of writers created without a size.
	DefaultBufferSize = 1024
	// MaxPrefixedLength is the largest payload a uint16 length prefix can describe.
	MaxPrefixedLength = math.MaxUint16
	// SizePrefixLen is the width of the frame size slot reserved by ReserveSizePrefix.
	SizePrefixLen = 4
	prefixLen     = 2
)

// Options configures NewWriter.
type Options struct {
	// InitialSize is the starting capacity in bytes.
	InitialSize int
	// FixedSize makes writes that do not fit fail instead of growing the buffer.
	FixedSize bool
	// Allocator, when set, backs the writer with raw memory from it instead
	// of a Go slice. Such writers must be released with Free.
	Allocator store.Allocator
}

// DefaultOptions returns a growable, slice-backed writer of DefaultBufferSize bytes.
func DefaultOptions() Options {
	return Options{InitialSize: DefaultBufferSize}
}
