package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
)

// respondError エラーの種類からステータスコードを決めてJSONで返す
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("❌ リクエスト処理に失敗",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	c.JSON(status, gin.H{
		"error":   code,
		"message": err.Error(),
	})
}

func classifyError(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, model.ErrInvalidGeometry):
		return http.StatusBadRequest, "invalid_geometry"
	case errors.Is(err, model.ErrInvalidGrade):
		return http.StatusBadRequest, "invalid_grade"
	case errors.Is(err, model.ErrBadRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, model.ErrUnreadableInput):
		return http.StatusBadRequest, "invalid_input_file"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, "canceled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
