package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Recommender string `json:"recommender"`
}

// HandleHealth returns the health status of the service
func HandleHealth(c *gin.Context) {
	recommenderStatus := "unavailable"
	if currentRecommender() != nil {
		recommenderStatus = "ready"
	}

	status := "healthy"
	if recommenderStatus == "unavailable" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Recommender: recommenderStatus,
	})
}

// HandleReadiness returns whether the service is ready to accept traffic
// It fails until the recommender has been initialized
func HandleReadiness(c *gin.Context) {
	if currentRecommender() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "recommender_not_initialized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
