package codec

import (
	"context"
	"log/slog"

	"flexline/internal/logging"
	"flexline/internal/polyline"
	"flexline/internal/util"

	"github.com/cockroachdb/errors"
)

// Decoded is a polyline header together with its coordinates.
type Decoded struct {
	Header      polyline.Header    `json:"header"`
	Coordinates []polyline.LatLngZ `json:"coordinates"`
}

type Options struct {
	// ValidateCoordinates rejects latitudes outside [-90, 90] and longitudes
	// outside [-180, 180] before encoding.
	ValidateCoordinates bool
}

// CodecService wraps the codec with coordinate checks and a decode cache.
type CodecService struct {
	cache Cache
	opts  Options
}

// NewCodecService creates the service. cache may be nil.
func NewCodecService(cache Cache, opts Options) *CodecService {
	return &CodecService{cache: cache, opts: opts}
}

// Encode encodes coordinates using the precisions and kind in h.
func (s *CodecService) Encode(ctx context.Context, coords []polyline.LatLngZ, h polyline.Header) (string, error) {
	if s.opts.ValidateCoordinates {
		for i, c := range coords {
			if !util.ValidLatLng(c.Lat, c.Lng) {
				return "", errors.Wrapf(polyline.ErrInvalidArgument,
					"coordinate %d (%v, %v) is outside the valid lat/lng range", i, c.Lat, c.Lng)
			}
		}
	}

	encoded, err := polyline.Encode(coords, h.Precision, h.ThirdDimension, h.ThirdDimensionPrecision)
	if err != nil {
		return "", err
	}

	logging.FromContext(ctx).Debug("encoded polyline",
		slog.Int("points", len(coords)),
		slog.Int("length", len(encoded)),
		slog.String("third_dimension", h.ThirdDimension.String()))
	return encoded, nil
}

// Decode decodes an encoded polyline. Cache errors are logged and skipped.
func (s *CodecService) Decode(ctx context.Context, encoded string) (Decoded, error) {
	log := logging.FromContext(ctx)

	if s.cache != nil {
		d, ok, err := s.cache.Get(ctx, encoded)
		if err != nil {
			log.Warn("polyline cache lookup failed", slog.Any("error", err))
		} else if ok {
			log.Debug("polyline cache hit", slog.Int("points", len(d.Coordinates)))
			return d, nil
		}
	}

	h, coords, err := polyline.DecodeWithHeader(encoded)
	if err != nil {
		return Decoded{}, err
	}
	d := Decoded{Header: h, Coordinates: coords}

	if s.cache != nil {
		if err := s.cache.Set(ctx, encoded, d); err != nil {
			log.Warn("polyline cache store failed", slog.Any("error", err))
		}
	}
	return d, nil
}

// ThirdDimension returns the kind recorded in the header of encoded.
func (s *CodecService) ThirdDimension(_ context.Context, encoded string) (polyline.ThirdDimension, error) {
	return polyline.GetThirdDimension(encoded)
}
