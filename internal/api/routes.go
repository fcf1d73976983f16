package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with recovery, request IDs, request
// logging and every route of the service.
func NewRouter(handler *Handler, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger, handler.metrics))

	SetupRoutes(router, handler)
	return router
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(handler.metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.POST("/classify", handler.Classify)
	v1.POST("/dataset", RateLimitMiddleware(handler.uploadLimiter), handler.UploadDataset)
	v1.GET("/dataset/stats", handler.Stats)
	v1.GET("/dataset/products", handler.Products)
	v1.GET("/dataset/reviews", handler.Reviews)
}
