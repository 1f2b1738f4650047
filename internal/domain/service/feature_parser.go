package service

import (
	"bytes"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"GeoConvert-App/internal/domain/model"
)

// ParseFeatures リクエストのフィーチャー群をドメインモデルに変換する
func ParseFeatures(docs []model.FeatureDocument) ([]model.Feature, error) {
	features := make([]model.Feature, 0, len(docs))
	for i, doc := range docs {
		if doc.Type != "" && doc.Type != "Feature" {
			return nil, &model.ValidationError{
				Field:   fmt.Sprintf("features[%d].type", i),
				Message: fmt.Sprintf("expected Feature, got %q", doc.Type),
			}
		}

		geometry, err := parseGeometry(i, doc.Geometry)
		if err != nil {
			return nil, err
		}

		grade, err := ParseGrade(doc.Properties)
		if err != nil {
			return nil, fmt.Errorf("features[%d].properties.grade: %w", i, err)
		}

		features = append(features, model.Feature{Geometry: geometry, Grade: grade})
	}
	return features, nil
}

// ParseGrade プロパティから評価区分を取り出す
// 未設定・null は nil、0〜3 の整数以外は ErrInvalidGrade
func ParseGrade(props map[string]interface{}) (*model.Grade, error) {
	raw, ok := props[model.GradePropertyKey]
	if !ok || raw == nil {
		return nil, nil
	}

	number, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidGrade, raw)
	}
	if number != math.Trunc(number) {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidGrade, number)
	}

	grade := model.Grade(number)
	if _, known := gradeColors[grade]; !known {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidGrade, grade)
	}
	return &grade, nil
}

// ParseRasterSpec 幅と高さを検証する
func ParseRasterSpec(width, height *int, maxDimension int) (model.RasterSpec, error) {
	if width == nil {
		return model.RasterSpec{}, &model.ValidationError{Field: "width", Message: "width is required"}
	}
	if height == nil {
		return model.RasterSpec{}, &model.ValidationError{Field: "height", Message: "height is required"}
	}
	if *width <= 0 {
		return model.RasterSpec{}, &model.ValidationError{Field: "width", Message: "width must be a positive integer"}
	}
	if *height <= 0 {
		return model.RasterSpec{}, &model.ValidationError{Field: "height", Message: "height must be a positive integer"}
	}
	if maxDimension > 0 && (*width > maxDimension || *height > maxDimension) {
		return model.RasterSpec{}, &model.ValidationError{
			Field:   "width/height",
			Message: fmt.Sprintf("raster dimensions must not exceed %d", maxDimension),
		}
	}
	return model.RasterSpec{Width: *width, Height: *height}, nil
}

func parseGeometry(index int, raw []byte) (orb.Geometry, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &model.GeometryError{Index: index, Reason: "geometry is required"}
	}

	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, &model.GeometryError{Index: index, Reason: err.Error()}
	}

	switch geometry := g.Coordinates.(type) {
	case orb.Polygon:
		if reason := validatePolygon(geometry); reason != "" {
			return nil, &model.GeometryError{Index: index, Reason: reason}
		}
		return geometry, nil
	case orb.MultiPolygon:
		if len(geometry) == 0 {
			return nil, &model.GeometryError{Index: index, Reason: "multipolygon has no polygons"}
		}
		for _, polygon := range geometry {
			if reason := validatePolygon(polygon); reason != "" {
				return nil, &model.GeometryError{Index: index, Reason: reason}
			}
		}
		return geometry, nil
	case nil:
		return nil, &model.GeometryError{Index: index, Reason: "geometry has no coordinates"}
	default:
		return nil, &model.GeometryError{
			Index:  index,
			Reason: fmt.Sprintf("unsupported geometry type %s", geometry.GeoJSONType()),
		}
	}
}

func validatePolygon(polygon orb.Polygon) string {
	if len(polygon) == 0 {
		return "polygon has no rings"
	}
	for _, ring := range polygon {
		if len(ring) < 4 {
			return "polygon ring must have at least 4 positions"
		}
	}
	return ""
}
