package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName ヘルスチェックで返すサービス名
const ServiceName = "GeoConvert-App"

// HealthCheck GET /api/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}
