package polyline

import "github.com/cockroachdb/errors"

// Error kinds returned by the codec. Every error returned from this package
// wraps exactly one of them, so callers can branch with errors.Is.
var (
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrUnsupportedFormatVersion = errors.New("unsupported format version")
	ErrCorruptEncoding          = errors.New("corrupt encoding")
)

// errEndOfStream signals that the input was exhausted before any character
// of a value was consumed.
var errEndOfStream = errors.New("end of stream")
