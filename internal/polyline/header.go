package polyline

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// FormatVersion is the only header version this package reads or writes.
const FormatVersion = 1

const maxPrecision = 15

// Header is the metadata prefixed to every encoded polyline.
type Header struct {
	Precision               int            `json:"precision"`
	ThirdDimension          ThirdDimension `json:"third_dimension"`
	ThirdDimensionPrecision int            `json:"third_dimension_precision"`
}

func (h Header) validate() error {
	if h.Precision < 0 || h.Precision > maxPrecision {
		return errors.Wrapf(ErrInvalidArgument, "precision %d out of range [0, %d]", h.Precision, maxPrecision)
	}
	if h.ThirdDimensionPrecision < 0 || h.ThirdDimensionPrecision > maxPrecision {
		return errors.Wrapf(ErrInvalidArgument, "third dimension precision %d out of range [0, %d]",
			h.ThirdDimensionPrecision, maxPrecision)
	}
	if !h.ThirdDimension.Valid() {
		return errors.Wrapf(ErrInvalidArgument, "third dimension code %d out of range [0, 7]", int(h.ThirdDimension))
	}
	return nil
}

func (h Header) packed() uint64 {
	return uint64(h.ThirdDimensionPrecision)<<7 | uint64(h.ThirdDimension.Code())<<4 | uint64(h.Precision)
}

func appendHeader(dst []byte, h Header) ([]byte, error) {
	if err := h.validate(); err != nil {
		return dst, err
	}
	dst = appendUnsignedVarint(dst, FormatVersion)
	return appendUnsignedVarint(dst, h.packed()), nil
}

func decodeHeader(s string, pos int) (Header, int, error) {
	version, pos, err := decodeUnsignedVarint(s, pos)
	if err != nil {
		return Header{}, pos, headerError(err)
	}
	if version != FormatVersion {
		return Header{}, pos, errors.Wrapf(ErrUnsupportedFormatVersion, "got version %d, want %d", version, FormatVersion)
	}

	packed, pos, err := decodeUnsignedVarint(s, pos)
	if err != nil {
		return Header{}, pos, headerError(err)
	}

	dim, err := ThirdDimensionFromCode(int64(packed>>4) & 7)
	if err != nil {
		return Header{}, pos, err
	}
	return Header{
		Precision:               int(packed & 15),
		ThirdDimension:          dim,
		ThirdDimensionPrecision: int(packed>>7) & 15,
	}, pos, nil
}

func headerError(err error) error {
	if errors.Is(err, errEndOfStream) {
		return errors.Wrap(ErrCorruptEncoding, "truncated header")
	}
	return errors.Wrap(err, "header")
}

// DecodeHeader reads only the header of an encoded polyline.
func DecodeHeader(encoded string) (Header, error) {
	if strings.TrimSpace(encoded) == "" {
		return Header{}, errors.Wrap(ErrInvalidArgument, "empty polyline")
	}
	h, _, err := decodeHeader(encoded, 0)
	return h, err
}

// GetThirdDimension returns the third dimension kind recorded in the header
// without decoding any coordinates.
func GetThirdDimension(encoded string) (ThirdDimension, error) {
	h, err := DecodeHeader(encoded)
	if err != nil {
		return Absent, err
	}
	return h.ThirdDimension, nil
}
