package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/monodither/internal/middleware"
)

// RouterConfig holds the request limits applied to the dither endpoints.
type RouterConfig struct {
	RateLimiter  *middleware.RateLimiter
	MaxBodyBytes int64
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	// Browser canvases post ImageData straight to the API
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{HeaderWidth, HeaderHeight, HeaderMethod, HeaderRunID, middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", HealthHandler)

	api := router.Group("/api")
	api.GET("/version", VersionHandler)
	api.GET("/methods", h.MethodsHandler)
	api.GET("/presets", h.PresetsHandler)
	api.GET("/stats", h.StatsHandler)
	api.GET("/runs", h.RunsHandler)

	limited := []gin.HandlerFunc{}
	if cfg.RateLimiter != nil {
		limited = append(limited, cfg.RateLimiter.RateLimit())
	}
	if cfg.MaxBodyBytes > 0 {
		limited = append(limited, middleware.RequestSizeLimit(cfg.MaxBodyBytes))
	}
	withLimits := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, limited...), handler)
	}
	api.POST("/dither", withLimits(h.DitherHandler)...)
	api.POST("/presets/:name/dither", withLimits(h.PresetDitherHandler)...)

	return router
}
