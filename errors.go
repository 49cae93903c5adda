package bytestream

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument reports a nil buffer, a non-positive amount, or an
	// offset/length outside the buffer.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCapacityExceeded reports a read past the readable length or a write
	// past a fixed-size writer's capacity.
	ErrCapacityExceeded = errors.New("buffer capacity exceeded")
	// ErrFixedSize reports an explicit resize of a fixed-size or non-owning buffer.
	ErrFixedSize = errors.New("buffer is fixed size")
	// ErrEncodingLimit reports a length-prefixed payload above
	// MaxPrefixedLength, or a size prefix that does not fit an int32.
	ErrEncodingLimit = errors.New("payload exceeds its length prefix")
	// ErrNoBuffer reports a Stream reset for reading with no buffer assigned.
	ErrNoBuffer = errors.New("stream has no buffer assigned")
	// ErrWrongMode reports a Stream operation for the other direction.
	ErrWrongMode = errors.New("operation not valid in current stream mode")
)

func overflow(op string, n, off, limit int) error {
	return errors.Wrapf(ErrCapacityExceeded, "%s %d bytes at offset %d, limit %d", op, n, off, limit)
}
