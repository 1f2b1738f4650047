package service

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
)

// BurnPlanner RenderMode に応じて焼き込むジオメトリと画素値の列を組み立てる
type BurnPlanner interface {
	Plan(features []model.Feature, opts model.RenderOptions) (iter.Seq[model.BurnShape], error)
}

// burnPlannerImpl BurnPlannerの実装
type burnPlannerImpl struct {
	logger *zap.Logger
}

// NewBurnPlanner 新しいBurnPlannerを作成
func NewBurnPlanner(logger *zap.Logger) BurnPlanner {
	return &burnPlannerImpl{logger: logger}
}

// Plan 全ての画素値を先に確定させてから遅延シーケンスを返す
func (p *burnPlannerImpl) Plan(features []model.Feature, opts model.RenderOptions) (iter.Seq[model.BurnShape], error) {
	switch opts.Mode {
	case model.RenderModePlain:
		return constantShapes(features, UnclassifiedValue), nil

	case model.RenderModeGradeColored:
		values := make([]uint8, len(features))
		for i, feature := range features {
			value, err := PixelValue(feature)
			if err != nil {
				return nil, fmt.Errorf("features[%d]: %w", i, err)
			}
			values[i] = value
		}
		return func(yield func(model.BurnShape) bool) {
			for i, feature := range features {
				if !yield(model.BurnShape{Geometry: feature.Geometry, Value: values[i]}) {
					return
				}
			}
		}, nil

	case model.RenderModeFiltered:
		// 評価区分3はどのトグルでも選択できない
		if dropped := CountUnfilterable(features); dropped > 0 {
			p.logger.Warn("⚠️ 評価区分3のフィーチャーはフィルタ描画の対象外です",
				zap.Int("dropped", dropped),
				zap.Int("total", len(features)),
			)
		}
		return FilterShapes(features, opts.Filter), nil

	default:
		return nil, &model.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown render mode %s", opts.Mode)}
	}
}

func constantShapes(features []model.Feature, value uint8) iter.Seq[model.BurnShape] {
	return func(yield func(model.BurnShape) bool) {
		for _, feature := range features {
			if !yield(model.BurnShape{Geometry: feature.Geometry, Value: value}) {
				return
			}
		}
	}
}
