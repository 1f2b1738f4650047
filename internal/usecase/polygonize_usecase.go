package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/repository"
	"GeoConvert-App/internal/domain/service"
	"GeoConvert-App/internal/infrastructure/codec"
)

type PolygonizeUseCase interface {
	// Polygonize はアップロードされたラスタを一時ファイルに保存し、同値領域をGeoJSONフィーチャーに変換する
	Polygonize(ctx context.Context, session repository.TempFileSession, upload io.Reader, opts model.PolygonizeOptions) ([]*geojson.Feature, error)

	// PolygonizeShapefile は同じ変換結果をシェープファイル一式のzipとして返す
	PolygonizeShapefile(ctx context.Context, session repository.TempFileSession, upload io.Reader, opts model.PolygonizeOptions) ([]byte, error)
}

// ShapefileArchiveName zip内のシェープファイルの名前
const ShapefileArchiveName = "polygons"

// polygonizeUseCaseImpl はPolygonizeUseCaseの実装
type polygonizeUseCaseImpl struct {
	polygonizer  service.Polygonizer
	maxDimension int
	logger       *zap.Logger
}

// NewPolygonizeUseCase は新しいPolygonizeUseCaseインスタンスを作成
func NewPolygonizeUseCase(polygonizer service.Polygonizer, maxDimension int, logger *zap.Logger) PolygonizeUseCase {
	return &polygonizeUseCaseImpl{
		polygonizer:  polygonizer,
		maxDimension: maxDimension,
		logger:       logger,
	}
}

func (u *polygonizeUseCaseImpl) Polygonize(ctx context.Context, session repository.TempFileSession, upload io.Reader, opts model.PolygonizeOptions) ([]*geojson.Feature, error) {
	polygons, err := u.polygonize(ctx, session, upload, opts)
	if err != nil {
		return nil, err
	}

	features := make([]*geojson.Feature, 0, len(polygons))
	for _, polygon := range polygons {
		features = append(features, geojson.NewFeature(polygon))
	}
	return features, nil
}

func (u *polygonizeUseCaseImpl) PolygonizeShapefile(ctx context.Context, session repository.TempFileSession, upload io.Reader, opts model.PolygonizeOptions) ([]byte, error) {
	polygons, err := u.polygonize(ctx, session, upload, opts)
	if err != nil {
		return nil, err
	}

	base, err := session.ReserveGroup(codec.ShapefileExtensions...)
	if err != nil {
		return nil, err
	}
	if err := codec.WriteShapefile(base, polygons); err != nil {
		return nil, fmt.Errorf("シェープファイルの書き出しに失敗: %w", err)
	}

	var buf bytes.Buffer
	if err := codec.ZipShapefile(&buf, base, ShapefileArchiveName); err != nil {
		return nil, fmt.Errorf("シェープファイルの圧縮に失敗: %w", err)
	}
	return buf.Bytes(), nil
}

// polygonize 保存・デコード・ポリゴン化までの共通処理
func (u *polygonizeUseCaseImpl) polygonize(ctx context.Context, session repository.TempFileSession, upload io.Reader, opts model.PolygonizeOptions) ([]orb.Polygon, error) {
	path, err := session.Stage(ctx, upload, "")
	if err != nil {
		return nil, fmt.Errorf("ラスタの受信に失敗: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	defer f.Close()

	band, format, err := codec.DecodeBand(f, u.maxDimension)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("🗺️ ラスタ読み込み完了",
		zap.String("format", format),
		zap.Int("width", band.Width),
		zap.Int("height", band.Height),
	)

	polygons, err := u.polygonizer.Polygonize(ctx, band, opts)
	if err != nil {
		return nil, fmt.Errorf("ポリゴン化に失敗: %w", err)
	}

	u.logger.Info("✅ ポリゴン化完了", zap.Int("polygons", len(polygons)), zap.Bool("mask_zero", opts.MaskZero))
	return polygons, nil
}
