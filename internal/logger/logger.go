package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 環境に応じたロガーを作成する
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
