package model

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// Grade フィーチャーの評価区分（properties.grade）
type Grade int

const (
	GradeTruePositive  Grade = 0 // 正検出
	GradeFalsePositive Grade = 1 // 誤検出
	GradeFalseNegative Grade = 2 // 検出漏れ
	GradeOther         Grade = 3 // 色テーブルにはあるがフィルタのトグルがない
)

// GradePropertyKey 評価区分を保持するプロパティ名
const GradePropertyKey = "grade"

// Feature ラスタライズ対象のフィーチャー
type Feature struct {
	Geometry orb.Geometry // orb.Polygon または orb.MultiPolygon
	Grade    *Grade       // nil は未評価
}

// HasGrade 評価区分が設定されているかどうかを判定する
func (f Feature) HasGrade() bool {
	return f.Grade != nil
}

// FeatureDocument リクエストJSON中のフィーチャー表現（"type" は省略可）
type FeatureDocument struct {
	Type       string                 `json:"type,omitempty"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// RasterizeRequest POST /rasterize のリクエストボディ
type RasterizeRequest struct {
	Width    *int              `json:"width"`
	Height   *int              `json:"height"`
	Features []FeatureDocument `json:"features"`
}

// StatisticsRequest POST /statistics のリクエストボディ
type StatisticsRequest struct {
	Features []FeatureDocument `json:"features"`
}

// BurnShape ラスタに焼き込むジオメトリと画素値の組
type BurnShape struct {
	Geometry orb.Geometry
	Value    uint8
}
