package router

import (
	"github.com/gin-gonic/gin"

	"menulens/internal/handler"
	"menulens/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(extractionH *handler.ExtractionHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	api := r.Group("/api")
	api.POST("/ocr", extractionH.Extract)
	api.GET("/health", healthH.Check)

	return r
}
