package routes

import (
	"github.com/gin-gonic/gin"

	"docbrief/api/handlers"
	"docbrief/api/middleware"
	"docbrief/pkg/logger"
)

// SetupRoutes installs global middleware and registers every endpoint.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, corsOrigins []string, log logger.Logger) {
	r.Use(middleware.RequestID(log))
	r.Use(middleware.CORS(corsOrigins))

	r.GET("/", h.Health.Check)
	r.POST("/upload", h.Summary.Summarize)
}
