package service

import (
	"fmt"

	"GeoConvert-App/internal/domain/model"
)

// UnclassifiedValue 評価区分なしのフィーチャーの画素値
const UnclassifiedValue uint8 = 255

// gradeColors 評価区分ごとの画素値
var gradeColors = map[model.Grade]uint8{
	model.GradeTruePositive:  192,
	model.GradeFalsePositive: 144,
	model.GradeFalseNegative: 96,
	model.GradeOther:         48,
}

// GradeColor 評価区分に対応する画素値を返す
func GradeColor(grade model.Grade) (uint8, error) {
	value, ok := gradeColors[grade]
	if !ok {
		return 0, fmt.Errorf("%w: %d", model.ErrInvalidGrade, grade)
	}
	return value, nil
}

// PixelValue フィーチャーの画素値を返す（評価区分なしは255）
func PixelValue(feature model.Feature) (uint8, error) {
	if !feature.HasGrade() {
		return UnclassifiedValue, nil
	}
	return GradeColor(*feature.Grade)
}
