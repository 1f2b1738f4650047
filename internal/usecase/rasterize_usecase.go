package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/repository"
	"GeoConvert-App/internal/domain/service"
	"GeoConvert-App/internal/infrastructure/codec"
)

type RasterizeUseCase interface {
	// Rasterize はリクエストボディを一時ファイルに保存してラスタライズし、エンコード済みの画像を返す
	Rasterize(ctx context.Context, session repository.TempFileSession, body io.Reader, opts model.RenderOptions, format model.OutputFormat) (*RasterizeResult, error)

	// RasterizeToFile はラスタを出力領域のTIFFファイルに書き出し、そのパスを返す
	RasterizeToFile(ctx context.Context, session repository.TempFileSession, body io.Reader, opts model.RenderOptions) (string, error)
}

// RasterizeResult はエンコード済みラスタ
type RasterizeResult struct {
	Data        []byte
	ContentType string
}

// rasterizeUseCaseImpl はRasterizeUseCaseの実装
type rasterizeUseCaseImpl struct {
	planner      service.BurnPlanner
	rasterizer   service.Rasterizer
	maxDimension int
	logger       *zap.Logger
}

// NewRasterizeUseCase は新しいRasterizeUseCaseインスタンスを作成
func NewRasterizeUseCase(planner service.BurnPlanner, rasterizer service.Rasterizer, maxDimension int, logger *zap.Logger) RasterizeUseCase {
	return &rasterizeUseCaseImpl{
		planner:      planner,
		rasterizer:   rasterizer,
		maxDimension: maxDimension,
		logger:       logger,
	}
}

func (u *rasterizeUseCaseImpl) Rasterize(ctx context.Context, session repository.TempFileSession, body io.Reader, opts model.RenderOptions, format model.OutputFormat) (*RasterizeResult, error) {
	raster, err := u.render(ctx, session, body, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, raster, format); err != nil {
		return nil, fmt.Errorf("画像のエンコードに失敗: %w", err)
	}

	return &RasterizeResult{
		Data:        buf.Bytes(),
		ContentType: codec.ContentType(format),
	}, nil
}

func (u *rasterizeUseCaseImpl) RasterizeToFile(ctx context.Context, session repository.TempFileSession, body io.Reader, opts model.RenderOptions) (string, error) {
	raster, err := u.render(ctx, session, body, opts)
	if err != nil {
		return "", err
	}

	outPath, err := session.Reserve(codec.FileExtension(model.OutputFormatTIFF))
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	if err := codec.Encode(f, raster, model.OutputFormatTIFF); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	return outPath, nil
}

// render ボディの保存・解析・描画までの共通処理
func (u *rasterizeUseCaseImpl) render(ctx context.Context, session repository.TempFileSession, body io.Reader, opts model.RenderOptions) (*model.Raster, error) {
	path, err := session.Stage(ctx, body, ".json")
	if err != nil {
		return nil, fmt.Errorf("リクエストの受信に失敗: %w", err)
	}

	req, err := readRasterizeRequest(path)
	if err != nil {
		return nil, err
	}

	spec, err := service.ParseRasterSpec(req.Width, req.Height, u.maxDimension)
	if err != nil {
		return nil, err
	}
	features, err := service.ParseFeatures(req.Features)
	if err != nil {
		return nil, err
	}

	shapes, err := u.planner.Plan(features, opts)
	if err != nil {
		return nil, err
	}

	raster, err := u.rasterizer.Rasterize(ctx, shapes, spec)
	if err != nil {
		return nil, fmt.Errorf("ラスタライズに失敗: %w", err)
	}

	u.logger.Info("✅ ラスタライズ完了",
		zap.String("mode", opts.Mode.String()),
		zap.Int("features", len(features)),
		zap.Int("width", spec.Width),
		zap.Int("height", spec.Height),
	)
	return raster, nil
}

func readRasterizeRequest(path string) (*model.RasterizeRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	defer f.Close()

	var req model.RasterizeRequest
	if err := json.NewDecoder(f).Decode(&req); err != nil {
		return nil, &model.ValidationError{Field: "body", Message: "Invalid JSON format: " + err.Error()}
	}
	return &req, nil
}
