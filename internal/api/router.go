package api

import (
	routes "flexline/internal/api/handlers"
	"flexline/internal/config"
	"flexline/internal/service/codec"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, cfg config.Config, svc *codec.CodecService) {
	r.Use(RequestLogger(), gin.Recovery())

	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), cfg)

	// Setup polyline handlers
	routes.SetupPolylineHandlers(api, routes.NewPolylineHandler(svc, cfg.DefaultPrecision))
}
