package handler

import (
	"net/http"

	"book-recommender/backend/internal/agent/prompt"
	"book-recommender/backend/internal/model"

	"github.com/gin-gonic/gin"
)

func HandleGetHints(c *gin.Context) {
	hints := make([]string, len(prompt.LiteraryHints))
	copy(hints, prompt.LiteraryHints)
	c.JSON(http.StatusOK, gin.H{"hints": hints})
}

func HandleGetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions": model.Regions(),
		"default": model.RegionNoPreference,
		"paragraphs": gin.H{
			"min":     model.MinParagraphs,
			"max":     model.MaxParagraphs,
			"default": model.DefaultParagraphs,
		},
	})
}
