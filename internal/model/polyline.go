package model

import (
	"flexline/internal/polyline"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// EncodeRequest carries coordinates either as [[lat, lng(, z)], ...] or as a
// GeoJSON LineString ([lng, lat] positions, no third dimension).
type EncodeRequest struct {
	Coordinates             [][]float64       `json:"coordinates"`
	Line                    *geojson.Geometry `json:"line"`
	Precision               *int              `json:"precision"`
	ThirdDimension          string            `json:"third_dimension"`
	ThirdDimensionPrecision int               `json:"third_dimension_precision"`
}

type EncodeResponse struct {
	Polyline string `json:"polyline"`
}

type DecodeRequest struct {
	Polyline string `json:"polyline" binding:"required"`
}

// DecodeResponse lists coordinates as [lat, lng] or, with a third
// dimension, [lat, lng, z].
type DecodeResponse struct {
	polyline.Header
	Coordinates [][]float64 `json:"coordinates"`
}

type DimensionResponse struct {
	ThirdDimension polyline.ThirdDimension `json:"third_dimension"`
}

// Header resolves the request header, using defaultPrecision when the
// request does not set one.
func (r EncodeRequest) Header(defaultPrecision int) (polyline.Header, error) {
	dim, err := polyline.ParseThirdDimension(r.ThirdDimension)
	if err != nil {
		return polyline.Header{}, err
	}
	h := polyline.Header{
		Precision:               defaultPrecision,
		ThirdDimension:          dim,
		ThirdDimensionPrecision: r.ThirdDimensionPrecision,
	}
	if r.Precision != nil {
		h.Precision = *r.Precision
	}
	return h, nil
}

// Points converts the request coordinates into codec triples.
func (r EncodeRequest) Points() ([]polyline.LatLngZ, error) {
	switch {
	case r.Line != nil && len(r.Coordinates) > 0:
		return nil, errors.Wrap(polyline.ErrInvalidArgument, "set either coordinates or line, not both")
	case r.Line != nil:
		return lineStringPoints(r.Line)
	}

	points := make([]polyline.LatLngZ, len(r.Coordinates))
	for i, c := range r.Coordinates {
		switch len(c) {
		case 2:
			points[i] = polyline.LatLng(c[0], c[1])
		case 3:
			points[i] = polyline.LatLngZ{Lat: c[0], Lng: c[1], Z: c[2]}
		default:
			return nil, errors.Wrapf(polyline.ErrInvalidArgument,
				"coordinate %d has %d values, want 2 or 3", i, len(c))
		}
	}
	return points, nil
}

func lineStringPoints(g *geojson.Geometry) ([]polyline.LatLngZ, error) {
	ls, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil, errors.Wrapf(polyline.ErrInvalidArgument, "line must be a LineString, got %s", g.Type)
	}
	points := make([]polyline.LatLngZ, len(ls))
	for i, p := range ls {
		points[i] = polyline.LatLng(p.Lat(), p.Lon())
	}
	return points, nil
}

func NewDecodeResponse(h polyline.Header, coords []polyline.LatLngZ) DecodeResponse {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		if h.ThirdDimension == polyline.Absent {
			out[i] = []float64{c.Lat, c.Lng}
		} else {
			out[i] = []float64{c.Lat, c.Lng, c.Z}
		}
	}
	return DecodeResponse{Header: h, Coordinates: out}
}

// NewFeature renders a decoded polyline as a GeoJSON LineString feature.
// Header fields and third dimension values go into the properties.
func NewFeature(h polyline.Header, coords []polyline.LatLngZ) *geojson.Feature {
	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c.Lng, c.Lat} // [lon, lat] for GeoJSON
	}

	feature := geojson.NewFeature(line)
	feature.Properties["precision"] = h.Precision
	feature.Properties["third_dimension"] = h.ThirdDimension.String()
	if h.ThirdDimension != polyline.Absent {
		z := make([]float64, len(coords))
		for i, c := range coords {
			z[i] = c.Z
		}
		feature.Properties["third_dimension_precision"] = h.ThirdDimensionPrecision
		feature.Properties["z"] = z
	}
	return feature
}
