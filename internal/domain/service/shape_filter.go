package service

import (
	"iter"

	"GeoConvert-App/internal/domain/model"
)

// FilterShapes トグルで許可された評価区分のフィーチャーだけを入力順に返す
// GradeOther と未評価のフィーチャーはどのトグルにも対応しないため出力されない
func FilterShapes(features []model.Feature, filter model.ShapeFilter) iter.Seq[model.BurnShape] {
	return func(yield func(model.BurnShape) bool) {
		for _, feature := range features {
			if !feature.HasGrade() || !filter.Admits(*feature.Grade) {
				continue
			}

			value := UnclassifiedValue
			if filter.Grayscale {
				// Admits が true なら 0〜2 なので失敗しない
				value = gradeColors[*feature.Grade]
			}

			if !yield(model.BurnShape{Geometry: feature.Geometry, Value: value}) {
				return
			}
		}
	}
}

// CountUnfilterable フィルタ対象外となる評価区分3のフィーチャー数
func CountUnfilterable(features []model.Feature) int {
	count := 0
	for _, feature := range features {
		if feature.HasGrade() && *feature.Grade == model.GradeOther {
			count++
		}
	}
	return count
}
