package model

// GradeStatistics 評価区分ごとのフィーチャー数
type GradeStatistics struct {
	Total         int `json:"total"`
	TruePositive  int `json:"true_positive"`
	FalsePositive int `json:"false_positive"`
	FalseNegative int `json:"false_negative"`
	Other         int `json:"other"`
	Unspecified   int `json:"unspecified"`
}
