package polyline

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ThirdDimension describes what the optional third value of every triple means.
type ThirdDimension int

const (
	Absent ThirdDimension = iota
	Level
	Altitude
	Elevation
	Reserved1
	Reserved2
	Custom1
	Custom2
)

var thirdDimensionNames = [...]string{
	Absent:    "ABSENT",
	Level:     "LEVEL",
	Altitude:  "ALTITUDE",
	Elevation: "ELEVATION",
	Reserved1: "RESERVED1",
	Reserved2: "RESERVED2",
	Custom1:   "CUSTOM1",
	Custom2:   "CUSTOM2",
}

// Code returns the 3-bit header code of the kind.
func (d ThirdDimension) Code() int {
	return int(d)
}

// Valid reports whether d is one of the eight defined kinds.
func (d ThirdDimension) Valid() bool {
	return d >= Absent && d <= Custom2
}

func (d ThirdDimension) String() string {
	if !d.Valid() {
		return "UNKNOWN"
	}
	return thirdDimensionNames[d]
}

// MarshalText encodes the kind by name, so it reads well in JSON payloads.
func (d ThirdDimension) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown third dimension %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *ThirdDimension) UnmarshalText(text []byte) error {
	parsed, err := ParseThirdDimension(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ThirdDimensionFromCode maps a header code back to its kind.
func ThirdDimensionFromCode(code int64) (ThirdDimension, error) {
	if code < int64(Absent) || code > int64(Custom2) {
		return Absent, errors.Wrapf(ErrCorruptEncoding, "unknown third dimension code %d", code)
	}
	return ThirdDimension(code), nil
}

// ParseThirdDimension resolves a case-insensitive kind name such as "altitude".
// An empty name means Absent.
func ParseThirdDimension(name string) (ThirdDimension, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Absent, nil
	}
	for i, n := range thirdDimensionNames {
		if strings.EqualFold(n, name) {
			return ThirdDimension(i), nil
		}
	}
	return Absent, errors.Wrapf(ErrInvalidArgument, "unknown third dimension %q", name)
}
