package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GeoConvert-App/internal/config"
	"GeoConvert-App/internal/domain/service"
	"GeoConvert-App/internal/handler"
	"GeoConvert-App/internal/infrastructure/storage"
	"GeoConvert-App/internal/logger"
	"GeoConvert-App/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	zapLogger, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 接続を受け付ける前にアップロード・出力ディレクトリを作成
	fileStore, err := storage.NewTempFileStore(cfg.UploadDir, cfg.OutputDir, zapLogger)
	if err != nil {
		zapLogger.Fatal("一時ファイル領域の初期化に失敗", zap.Error(err))
	}

	// Dependency injection
	polygonizeUseCase := usecase.NewPolygonizeUseCase(service.NewPolygonizer(), cfg.MaxRasterDimension, zapLogger)
	rasterizeUseCase := usecase.NewRasterizeUseCase(
		service.NewBurnPlanner(zapLogger),
		service.NewRasterizer(cfg.RasterWorkers),
		cfg.MaxRasterDimension,
		zapLogger,
	)
	statisticsUseCase := usecase.NewStatisticsUseCase()

	conversionHandler := handler.NewConversionHandler(polygonizeUseCase, rasterizeUseCase, fileStore, cfg.MaxUploadBytes, zapLogger)
	statisticsHandler := handler.NewStatisticsHandler(statisticsUseCase, cfg.MaxUploadBytes, zapLogger)
	router := handler.NewRouter(conversionHandler, statisticsHandler, cfg.RequestTimeout, zapLogger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info(fmt.Sprintf("🚀 %s server starting on :%s...", handler.ServiceName, cfg.Port),
			zap.String("upload_dir", fileStore.UploadDir()),
			zap.String("output_dir", fileStore.OutputDir()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("サーバーの起動に失敗", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("🛑 シャットダウン中...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("シャットダウンに失敗", zap.Error(err))
	}
}
