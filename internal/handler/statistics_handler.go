package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/usecase"
)

// StatisticsHandler 評価区分の集計に関するHTTPハンドラー
type StatisticsHandler struct {
	statisticsUseCase usecase.StatisticsUseCase
	maxUploadBytes    int64
	logger            *zap.Logger
}

// NewStatisticsHandler StatisticsHandlerの新しいインスタンスを作成
func NewStatisticsHandler(statisticsUseCase usecase.StatisticsUseCase, maxUploadBytes int64, logger *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsUseCase: statisticsUseCase,
		maxUploadBytes:    maxUploadBytes,
		logger:            logger,
	}
}

// CountGrades POST /statistics - 評価区分ごとのフィーチャー数を返す
func (h *StatisticsHandler) CountGrades(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var req model.StatisticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if !errors.As(err, &maxBytesErr) {
			err = &model.ValidationError{Field: "body", Message: "Invalid JSON format: " + err.Error()}
		}
		respondError(c, h.logger, err)
		return
	}

	stats, err := h.statisticsUseCase.CountGrades(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
