package polyline

import (
	"math"

	"github.com/cockroachdb/errors"
)

var powersOfTen = func() (p [maxPrecision + 1]int64) {
	p[0] = 1
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1] * 10
	}
	return p
}()

// maxScaled bounds |scaled| so that deltas and their zig-zag form fit in int64.
const maxScaled = 1 << 61

// converter delta-encodes one axis (lat, lng or z) of a coordinate stream.
// A converter belongs to a single encode or decode pass.
type converter struct {
	multiplier int64
	last       int64
}

func newConverter(precision int) converter {
	return converter{multiplier: powersOfTen[precision]}
}

// scale rounds half away from zero: -1.4 -> -1, -1.5 -> -2, -2.5 -> -3.
func (c *converter) scale(value float64) (int64, error) {
	abs := math.Round(math.Abs(value * float64(c.multiplier)))
	if math.IsNaN(abs) || abs >= maxScaled {
		return 0, errors.Wrapf(ErrInvalidArgument, "value %v cannot be scaled by %d", value, c.multiplier)
	}
	switch {
	case value < 0:
		return -int64(abs), nil
	case value > 0:
		return int64(abs), nil
	}
	return 0, nil
}

func (c *converter) encodeValue(dst []byte, value float64) ([]byte, error) {
	scaled, err := c.scale(value)
	if err != nil {
		return dst, err
	}
	delta := scaled - c.last
	c.last = scaled

	// zig-zag: free the lowest bit for the sign
	zz := delta << 1
	if delta < 0 {
		zz = ^zz
	}
	return appendUnsignedVarint(dst, uint64(zz)), nil
}

func (c *converter) decodeValue(s string, pos int) (float64, int, error) {
	encoded, next, err := decodeUnsignedVarint(s, pos)
	if err != nil {
		return 0, next, err
	}

	delta := int64(encoded)
	if delta&1 != 0 {
		delta = ^delta
	}
	delta >>= 1

	c.last += delta
	return float64(c.last) / float64(c.multiplier), next, nil
}

// decodeRequired is decodeValue for positions where the stream may not end.
func (c *converter) decodeRequired(s string, pos int, axis string) (float64, int, error) {
	v, next, err := c.decodeValue(s, pos)
	if errors.Is(err, errEndOfStream) {
		return 0, next, errors.Wrapf(ErrCorruptEncoding, "missing %s value at offset %d", axis, pos)
	}
	return v, next, err
}
