package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes installs the page template and every application route
func RegisterRoutes(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Health check endpoints (outside /api group)
	r.GET("/health", HandleHealth)
	r.GET("/ready", HandleReadiness)

	r.GET("/", HandleIndex)
	r.POST("/", HandleIndex)

	api := r.Group("/api")
	{
		api.POST("/recommend", HandleRecommend)
		api.GET("/history", HandleGetHistory)
		api.POST("/session/reset", HandleResetSession)
		api.GET("/hints", HandleGetHints)
		api.GET("/regions", HandleGetRegions)
	}
	return nil
}
