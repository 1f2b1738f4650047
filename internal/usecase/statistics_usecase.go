package usecase

import (
	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/service"
)

type StatisticsUseCase interface {
	// CountGrades はフィーチャーの評価区分ごとの件数を集計する
	CountGrades(req *model.StatisticsRequest) (*model.GradeStatistics, error)
}

// statisticsUseCaseImpl はStatisticsUseCaseの実装
type statisticsUseCaseImpl struct{}

// NewStatisticsUseCase は新しいStatisticsUseCaseインスタンスを作成
func NewStatisticsUseCase() StatisticsUseCase {
	return &statisticsUseCaseImpl{}
}

func (u *statisticsUseCaseImpl) CountGrades(req *model.StatisticsRequest) (*model.GradeStatistics, error) {
	features, err := service.ParseFeatures(req.Features)
	if err != nil {
		return nil, err
	}
	stats := service.CountGrades(features)
	return &stats, nil
}
