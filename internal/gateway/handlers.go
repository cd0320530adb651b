package gateway

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venusai/venus-services/internal/models"
)

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
		"uptime":  time.Since(s.startedAt).Seconds(),
	})
}

// listModels returns the supported model identifiers.
func (s *Server) listModels(c *gin.Context) {
	c.JSON(200, gin.H{
		"data": []models.ModelInfo{
			{ID: "deepseek/deepseek-r1", Object: "model", Created: 1640995200, OwnedBy: "deepseek"},
			{ID: "deepseek/deepseek-chat", Object: "model", Created: 1640995200, OwnedBy: "deepseek"},
			{ID: "deepseek/deepseek-coder", Object: "model", Created: 1640995200, OwnedBy: "deepseek"},
		},
	})
}
