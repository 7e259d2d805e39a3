// Package polyline implements the flexible polyline format: a lossy, URL-safe
// text encoding of coordinate triples.
//
// Each value is scaled to an integer with a configurable number of decimal
// digits, delta-encoded against the previous value of the same axis, zig-zag
// mapped to an unsigned integer and written 5 bits per character. A two-value
// header records the format version, both precisions and the meaning of the
// optional third dimension (level, altitude, elevation or a custom value).
//
// All functions are pure and safe for concurrent use.
package polyline

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Encoder accumulates coordinates into a single encoded polyline.
// An Encoder must not be used from more than one goroutine.
type Encoder struct {
	header Header
	buf    []byte
	lat    converter
	lng    converter
	z      converter
}

// NewEncoder validates the header fields and writes the header.
func NewEncoder(precision int, thirdDim ThirdDimension, thirdDimPrecision int) (*Encoder, error) {
	h := Header{
		Precision:               precision,
		ThirdDimension:          thirdDim,
		ThirdDimensionPrecision: thirdDimPrecision,
	}
	buf, err := appendHeader(make([]byte, 0, 16), h)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		header: h,
		buf:    buf,
		lat:    newConverter(precision),
		lng:    newConverter(precision),
		z:      newConverter(thirdDimPrecision),
	}, nil
}

// Add appends one coordinate. Z is ignored when the third dimension is Absent.
// On error the encoder is left unchanged.
func (e *Encoder) Add(c LatLngZ) error {
	lat, lng, z := e.lat, e.lng, e.z
	buf, err := lat.encodeValue(e.buf, c.Lat)
	if err != nil {
		return errors.Wrap(err, "latitude")
	}
	if buf, err = lng.encodeValue(buf, c.Lng); err != nil {
		return errors.Wrap(err, "longitude")
	}
	if e.header.ThirdDimension != Absent {
		if buf, err = z.encodeValue(buf, c.Z); err != nil {
			return errors.Wrap(err, "third dimension")
		}
	}
	e.buf, e.lat, e.lng, e.z = buf, lat, lng, z
	return nil
}

// Header returns the header the encoder writes.
func (e *Encoder) Header() Header {
	return e.header
}

// String returns the polyline encoded so far.
func (e *Encoder) String() string {
	return string(e.buf)
}

// Encode encodes coordinates with the given precisions. thirdDimPrecision is
// still validated and written when thirdDim is Absent.
func Encode(coordinates []LatLngZ, precision int, thirdDim ThirdDimension, thirdDimPrecision int) (string, error) {
	if len(coordinates) == 0 {
		return "", errors.Wrap(ErrInvalidArgument, "no coordinates to encode")
	}
	if !thirdDim.Valid() {
		return "", errors.Wrapf(ErrInvalidArgument, "unknown third dimension %d", int(thirdDim))
	}

	enc, err := NewEncoder(precision, thirdDim, thirdDimPrecision)
	if err != nil {
		return "", err
	}
	for i, c := range coordinates {
		if err := enc.Add(c); err != nil {
			return "", errors.Wrapf(err, "coordinate %d", i)
		}
	}
	return enc.String(), nil
}

// decoder walks the coordinate section that follows the header.
type decoder struct {
	encoded string
	pos     int
	header  Header
	lat     converter
	lng     converter
	z       converter
}

func newDecoder(encoded string) (*decoder, error) {
	h, pos, err := decodeHeader(encoded, 0)
	if err != nil {
		return nil, err
	}
	return &decoder{
		encoded: encoded,
		pos:     pos,
		header:  h,
		lat:     newConverter(h.Precision),
		lng:     newConverter(h.Precision),
		z:       newConverter(h.ThirdDimensionPrecision),
	}, nil
}

// next decodes one triple. It returns errEndOfStream only when the input is
// exhausted exactly at a triple boundary.
func (d *decoder) next() (LatLngZ, error) {
	var (
		c   LatLngZ
		err error
	)
	if c.Lat, d.pos, err = d.lat.decodeValue(d.encoded, d.pos); err != nil {
		return LatLngZ{}, err
	}
	if c.Lng, d.pos, err = d.lng.decodeRequired(d.encoded, d.pos, "longitude"); err != nil {
		return LatLngZ{}, err
	}
	if d.header.ThirdDimension != Absent {
		if c.Z, d.pos, err = d.z.decodeRequired(d.encoded, d.pos, "third dimension"); err != nil {
			return LatLngZ{}, err
		}
	}
	return c, nil
}

// Decode decodes an encoded polyline. It returns either every coordinate or
// an error, never a partial result.
func Decode(encoded string) ([]LatLngZ, error) {
	_, coords, err := DecodeWithHeader(encoded)
	return coords, err
}

// DecodeWithHeader is Decode that also returns the decoded header.
func DecodeWithHeader(encoded string) (Header, []LatLngZ, error) {
	if strings.TrimSpace(encoded) == "" {
		return Header{}, nil, errors.Wrap(ErrInvalidArgument, "empty polyline")
	}

	d, err := newDecoder(encoded)
	if err != nil {
		return Header{}, nil, err
	}

	coords := make([]LatLngZ, 0, len(encoded)/4)
	for {
		c, err := d.next()
		if errors.Is(err, errEndOfStream) {
			return d.header, coords, nil
		}
		if err != nil {
			return Header{}, nil, errors.Wrapf(err, "coordinate %d", len(coords))
		}
		coords = append(coords, c)
	}
}
