package model

import "fmt"

// RenderMode ラスタライズ時の画素値の決め方
type RenderMode int

const (
	RenderModePlain        RenderMode = iota // 全フィーチャー255
	RenderModeGradeColored                   // 評価区分ごとのグレースケール
	RenderModeFiltered                       // トグルで選択した評価区分のみ
)

func (m RenderMode) String() string {
	switch m {
	case RenderModePlain:
		return "plain"
	case RenderModeGradeColored:
		return "grade_colored"
	case RenderModeFiltered:
		return "filtered"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// ShapeFilter 評価区分ごとの描画トグル
type ShapeFilter struct {
	TruePositive  bool
	FalsePositive bool
	FalseNegative bool
	Grayscale     bool // true なら評価区分の色、false なら一律255
}

// Admits 指定の評価区分がトグルで許可されているか
// GradeOther と未評価は常に false
func (f ShapeFilter) Admits(g Grade) bool {
	switch g {
	case GradeTruePositive:
		return f.TruePositive
	case GradeFalsePositive:
		return f.FalsePositive
	case GradeFalseNegative:
		return f.FalseNegative
	default:
		return false
	}
}

// RenderOptions ラスタライズのモードとフィルタ
type RenderOptions struct {
	Mode   RenderMode
	Filter ShapeFilter
}

// ResolveRenderOptions トグル指定からモードを決める
// フィルタ系トグルが1つでも指定されていれば filtered、なければ grayscale で grade_colored、それ以外は plain
// nil は未指定を表す
func ResolveRenderOptions(grayscale bool, truePositive, falsePositive, falseNegative *bool) RenderOptions {
	if truePositive == nil && falsePositive == nil && falseNegative == nil {
		if grayscale {
			return RenderOptions{Mode: RenderModeGradeColored}
		}
		return RenderOptions{Mode: RenderModePlain}
	}

	isSet := func(b *bool) bool { return b != nil && *b }
	return RenderOptions{
		Mode: RenderModeFiltered,
		Filter: ShapeFilter{
			TruePositive:  isSet(truePositive),
			FalsePositive: isSet(falsePositive),
			FalseNegative: isSet(falseNegative),
			Grayscale:     grayscale,
		},
	}
}

// OutputFormat ラスタの出力形式
type OutputFormat string

const (
	OutputFormatTIFF        OutputFormat = "tiff"
	OutputFormatTIFFDeflate OutputFormat = "tiff-deflate"
	OutputFormatPNG         OutputFormat = "png"
)

// ParseOutputFormat クエリ文字列から出力形式を取得（空なら TIFF）
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputFormatTIFF:
		return OutputFormatTIFF, nil
	case OutputFormatTIFFDeflate, OutputFormatPNG:
		return OutputFormat(s), nil
	default:
		return "", &ValidationError{Field: "format", Message: "format must be one of tiff, tiff-deflate, png"}
	}
}

// PolygonizeOptions ポリゴン化のオプション
type PolygonizeOptions struct {
	// MaskZero が true なら値0の画素を無効画素として除外する
	MaskZero bool
}

// VectorFormat ポリゴン化結果の出力形式
type VectorFormat string

const (
	VectorFormatGeoJSON   VectorFormat = "geojson"
	VectorFormatShapefile VectorFormat = "shapefile"
)

// ParseVectorFormat クエリ文字列から出力形式を取得（空なら GeoJSON）
func ParseVectorFormat(s string) (VectorFormat, error) {
	switch VectorFormat(s) {
	case "", VectorFormatGeoJSON:
		return VectorFormatGeoJSON, nil
	case VectorFormatShapefile:
		return VectorFormatShapefile, nil
	default:
		return "", &ValidationError{Field: "format", Message: "format must be one of geojson, shapefile"}
	}
}
