package routes

import (
	"net/http"

	"flexline/internal/config"
	"flexline/internal/polyline"

	"github.com/gin-gonic/gin"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup, cfg config.Config) {
	cache := "memory"
	if cfg.RedisUrl != "" {
		cache = "redis"
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"format_version":    polyline.FormatVersion,
			"default_precision": cfg.DefaultPrecision,
			"cache":             cache,
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
