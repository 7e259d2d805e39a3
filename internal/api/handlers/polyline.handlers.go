package routes

import (
	"net/http"

	"flexline/internal/logging"
	"flexline/internal/model"
	"flexline/internal/polyline"
	"flexline/internal/service/codec"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type PolylineHandler struct {
	svc              *codec.CodecService
	defaultPrecision int
}

func NewPolylineHandler(svc *codec.CodecService, defaultPrecision int) *PolylineHandler {
	return &PolylineHandler{svc: svc, defaultPrecision: defaultPrecision}
}

// SetupPolylineHandlers registers the encode/decode endpoints
func SetupPolylineHandlers(router *gin.RouterGroup, h *PolylineHandler) {
	group := router.Group("/polyline")

	group.POST("/encode", h.Encode)
	group.POST("/decode", h.Decode)
	group.GET("/dimension", h.Dimension)
}

// Encode handles the encode endpoint
func (h *PolylineHandler) Encode(c *gin.Context) {
	var req model.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	header, err := req.Header(h.defaultPrecision)
	if err != nil {
		respondCodecError(c, err)
		return
	}
	points, err := req.Points()
	if err != nil {
		respondCodecError(c, err)
		return
	}

	encoded, err := h.svc.Encode(c.Request.Context(), points, header)
	if err != nil {
		respondCodecError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.EncodeResponse{Polyline: encoded})
}

// Decode handles the decode endpoint. ?format=geojson returns a GeoJSON Feature.
func (h *PolylineHandler) Decode(c *gin.Context) {
	var req model.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	d, err := h.svc.Decode(c.Request.Context(), req.Polyline)
	if err != nil {
		respondCodecError(c, err)
		return
	}

	switch c.Query("format") {
	case "geojson":
		c.JSON(http.StatusOK, model.NewFeature(d.Header, d.Coordinates))
	case "", "json":
		c.JSON(http.StatusOK, model.NewDecodeResponse(d.Header, d.Coordinates))
	default:
		respondError(c, http.StatusBadRequest, errors.Newf("unknown format %q", c.Query("format")))
	}
}

// Dimension handles the header peek endpoint
func (h *PolylineHandler) Dimension(c *gin.Context) {
	dim, err := h.svc.ThirdDimension(c.Request.Context(), c.Query("polyline"))
	if err != nil {
		respondCodecError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.DimensionResponse{ThirdDimension: dim})
}

func respondCodecError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, polyline.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, polyline.ErrUnsupportedFormatVersion), errors.Is(err, polyline.ErrCorruptEncoding):
		status = http.StatusUnprocessableEntity
	}
	respondError(c, status, err)
}

func respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed", "error", err)
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"message": err.Error(),
	})
}
