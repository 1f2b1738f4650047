package service

import "GeoConvert-App/internal/domain/model"

// CountGrades 評価区分ごとにフィーチャー数を集計する
func CountGrades(features []model.Feature) model.GradeStatistics {
	stats := model.GradeStatistics{Total: len(features)}
	for _, feature := range features {
		if !feature.HasGrade() {
			stats.Unspecified++
			continue
		}
		switch *feature.Grade {
		case model.GradeTruePositive:
			stats.TruePositive++
		case model.GradeFalsePositive:
			stats.FalsePositive++
		case model.GradeFalseNegative:
			stats.FalseNegative++
		default:
			stats.Other++
		}
	}
	return stats
}
