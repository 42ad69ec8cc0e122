package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wardrobelens/backend/config"
)

// SetupRouter creates and configures the Gin router.
// limiter may be nil, which leaves the API unlimited.
func SetupRouter(cfg *config.Config, handler *Handler, limiter *RateLimiter) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	if limiter != nil {
		api.Use(RateLimitMiddleware(limiter))
	}

	// API v1 routes
	v1 := api.Group("/v1")
	{
		v1.POST("/capsule", handler.CreateCapsule)
		v1.GET("/image/:id", handler.GetImage)
	}

	// Unversioned paths used by older extension builds
	api.POST("/capsule", handler.CreateCapsule)
	api.GET("/image/:id", handler.GetImage)

	return router
}
