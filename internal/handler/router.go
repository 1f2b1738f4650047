package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter Ginルーターをセットアップする
func NewRouter(
	conversionHandler *ConversionHandler,
	statisticsHandler *StatisticsHandler,
	requestTimeout time.Duration,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), RequestTimeout(requestTimeout))

	r.GET("/api/health", HealthCheck)

	r.POST("/polygonize", conversionHandler.Polygonize)
	r.POST("/rasterize", conversionHandler.Rasterize)
	r.POST("/rasterize-grayscale", conversionHandler.RasterizeGrayscale)
	r.POST("/statistics", statisticsHandler.CountGrades)

	return r
}
