package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flexline/internal/config"
	"flexline/internal/service/codec"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, opts codec.Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	cfg := config.Config{Port: ":0", DefaultPrecision: 5}
	SetupRouter(r, cfg, codec.NewCodecService(codec.NewMemoryCache(time.Minute, 100), opts))
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEncodeEndpoint(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	w := do(r, http.MethodPost, "/api/polyline/encode", `{
		"coordinates": [
			[50.1022829, 8.6982122],
			[50.1020076, 8.6956695],
			[50.1006313, 8.6914960],
			[50.0987800, 8.6875156]
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"polyline":"BFoz5xJ67i1B1B7PzIhaxL7Y"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestEncodeEndpointGeoJSONWithAltitude(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	w := do(r, http.MethodPost, "/api/polyline/encode", `{
		"coordinates": [
			[50.1022829, 8.6982122, 10],
			[50.1020076, 8.6956695, 20],
			[50.1006313, 8.6914960, 30],
			[50.0987800, 8.6875156, 40]
		],
		"third_dimension": "ALTITUDE"
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"polyline":"BlBoz5xJ67i1BU1B7PUzIhaUxL7YU"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/polyline/encode", `{
		"line": {"type": "LineString", "coordinates": [[-120.2, 38.5], [-120.95, 40.7]]}
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"polyline":"BFgx_qH_x09Wg2tNvvyE"}`, w.Body.String())
}

func TestEncodeEndpointErrors(t *testing.T) {
	r := newTestRouter(t, codec.Options{ValidateCoordinates: true})

	tests := map[string]string{
		"malformed json":    `{"coordinates":`,
		"empty":             `{"coordinates": []}`,
		"precision":         `{"coordinates": [[1, 2]], "precision": 16}`,
		"unknown dimension": `{"coordinates": [[1, 2]], "third_dimension": "depth"}`,
		"out of range":      `{"coordinates": [[91, 2]]}`,
	}
	for name, body := range tests {
		w := do(r, http.MethodPost, "/api/polyline/encode", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestDecodeEndpoint(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	w := do(r, http.MethodPost, "/api/polyline/decode", `{"polyline":"BFgx_qH_x09Wg2tNvvyE"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"precision": 5,
		"third_dimension": "ABSENT",
		"third_dimension_precision": 0,
		"coordinates": [[38.5, -120.2], [40.7, -120.95]]
	}`, w.Body.String())
}

func TestDecodeEndpointGeoJSON(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	w := do(r, http.MethodPost, "/api/polyline/decode?format=geojson", `{"polyline":"BlBoz5xJ67i1BU1B7PUzIhaUxL7YU"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var feature struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feature))
	assert.Equal(t, "Feature", feature.Type)
	assert.Equal(t, "LineString", feature.Geometry.Type)
	require.Len(t, feature.Geometry.Coordinates, 4)
	assert.Equal(t, []float64{8.69821, 50.10228}, feature.Geometry.Coordinates[0])
	assert.Equal(t, "ALTITUDE", feature.Properties["third_dimension"])
	assert.Equal(t, []any{10.0, 20.0, 30.0, 40.0}, feature.Properties["z"])
}

func TestDecodeEndpointErrors(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	tests := []struct {
		target, body string
		status       int
	}{
		{"/api/polyline/decode", `{}`, http.StatusBadRequest},
		{"/api/polyline/decode", `{"polyline":"   "}`, http.StatusBadRequest},
		{"/api/polyline/decode", `{"polyline":"CFoz5xJ"}`, http.StatusUnprocessableEntity},
		{"/api/polyline/decode", `{"polyline":"BFoz5xJ67"}`, http.StatusUnprocessableEntity},
		{"/api/polyline/decode", `{"polyline":"BF+/"}`, http.StatusUnprocessableEntity},
		{"/api/polyline/decode?format=kml", `{"polyline":"BF"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := do(r, http.MethodPost, tt.target, tt.body)
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.target, tt.body)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body["status"])
	}
}

func TestDimensionEndpoint(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	w := do(r, http.MethodGet, "/api/polyline/dimension?polyline=BVoz5xJ67i1BU1B7PUzIhaUxL7YU", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"third_dimension":"LEVEL"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/polyline/dimension", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMainEndpoints(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	w := do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"format_version":1,"default_precision":5,"cache":"memory"}`, w.Body.String())
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newTestRouter(t, codec.Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc123", w.Header().Get(RequestIDHeader))
}
