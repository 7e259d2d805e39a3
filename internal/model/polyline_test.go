package model

import (
	"encoding/json"
	"testing"

	"flexline/internal/polyline"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequestCoordinates(t *testing.T) {
	var r EncodeRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"coordinates": [[50.1, 8.6], [50.2, 8.7, 120.5]],
		"third_dimension": "altitude",
		"third_dimension_precision": 1
	}`), &r))

	points, err := r.Points()
	require.NoError(t, err)
	assert.Equal(t, []polyline.LatLngZ{{Lat: 50.1, Lng: 8.6}, {Lat: 50.2, Lng: 8.7, Z: 120.5}}, points)

	h, err := r.Header(5)
	require.NoError(t, err)
	assert.Equal(t, polyline.Header{Precision: 5, ThirdDimension: polyline.Altitude, ThirdDimensionPrecision: 1}, h)
}

func TestEncodeRequestLine(t *testing.T) {
	var r EncodeRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"line": {"type": "LineString", "coordinates": [[8.6982122, 50.1022829], [8.6956695, 50.1020076]]},
		"precision": 7
	}`), &r))

	points, err := r.Points()
	require.NoError(t, err)
	assert.Equal(t, []polyline.LatLngZ{
		polyline.LatLng(50.1022829, 8.6982122),
		polyline.LatLng(50.1020076, 8.6956695),
	}, points)

	h, err := r.Header(5)
	require.NoError(t, err)
	assert.Equal(t, 7, h.Precision)
}

func TestEncodeRequestErrors(t *testing.T) {
	for name, body := range map[string]string{
		"bad arity": `{"coordinates": [[1]]}`,
		"both":      `{"coordinates": [[1, 2]], "line": {"type": "LineString", "coordinates": [[2, 1]]}}`,
		"polygon":   `{"line": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}}`,
	} {
		var r EncodeRequest
		require.NoError(t, json.Unmarshal([]byte(body), &r), name)
		_, err := r.Points()
		assert.True(t, errors.Is(err, polyline.ErrInvalidArgument), name)
	}

	_, err := EncodeRequest{ThirdDimension: "depth"}.Header(5)
	assert.True(t, errors.Is(err, polyline.ErrInvalidArgument))
}

func TestNewDecodeResponse(t *testing.T) {
	coords := []polyline.LatLngZ{{Lat: 1, Lng: 2, Z: 3}}

	r := NewDecodeResponse(polyline.Header{Precision: 5}, coords)
	assert.Equal(t, [][]float64{{1, 2}}, r.Coordinates)

	r = NewDecodeResponse(polyline.Header{Precision: 5, ThirdDimension: polyline.Level}, coords)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"precision":5,"third_dimension":"LEVEL","third_dimension_precision":0,"coordinates":[[1,2,3]]}`, string(b))
}

func TestNewFeature(t *testing.T) {
	h := polyline.Header{Precision: 5, ThirdDimension: polyline.Elevation, ThirdDimensionPrecision: 1}
	f := NewFeature(h, []polyline.LatLngZ{{Lat: 50, Lng: 8, Z: 100}, {Lat: 51, Lng: 9, Z: 110}})

	assert.Equal(t, orb.LineString{{8, 50}, {9, 51}}, f.Geometry)
	assert.Equal(t, "ELEVATION", f.Properties["third_dimension"])
	assert.Equal(t, []float64{100, 110}, f.Properties["z"])

	f = NewFeature(polyline.Header{Precision: 5}, []polyline.LatLngZ{{Lat: 50, Lng: 8}})
	_, hasZ := f.Properties["z"]
	assert.False(t, hasZ)
}
