package service

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GeoConvert-App/internal/domain/model"
)

func decodeDocuments(t *testing.T, body string) []model.FeatureDocument {
	t.Helper()
	var docs []model.FeatureDocument
	require.NoError(t, json.Unmarshal([]byte(body), &docs))
	return docs
}

func TestParseFeatures(t *testing.T) {
	docs := decodeDocuments(t, `[
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,4],[0,4],[0,0]]]}, "properties": {"grade": 1}},
		{"geometry": {"type": "MultiPolygon", "coordinates": [[[[0,0],[1,0],[1,1],[0,0]]]]}, "properties": {}}
	]`)

	features, err := ParseFeatures(docs)
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, square(0, 0, 4, 4), features[0].Geometry)
	require.True(t, features[0].HasGrade())
	assert.Equal(t, model.GradeFalsePositive, *features[0].Grade)

	assert.IsType(t, orb.MultiPolygon{}, features[1].Geometry)
	assert.False(t, features[1].HasGrade())
}

func TestParseFeatures_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "ジオメトリなし", body: `[{"properties": {}}]`},
		{name: "null", body: `[{"geometry": null}]`},
		{name: "ポイント", body: `[{"geometry": {"type": "Point", "coordinates": [1,2]}}]`},
		{name: "頂点不足", body: `[{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[0,0]]]}}]`},
		{name: "リングなし", body: `[{"geometry": {"type": "Polygon", "coordinates": []}}]`},
		{name: "空のマルチポリゴン", body: `[{"geometry": {"type": "MultiPolygon", "coordinates": []}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeatures(decodeDocuments(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidGeometry)

			var geometryErr *model.GeometryError
			require.ErrorAs(t, err, &geometryErr)
			assert.Equal(t, 0, geometryErr.Index)
		})
	}
}

func TestParseFeatures_WrongType(t *testing.T) {
	_, err := ParseFeatures(decodeDocuments(t, `[{"type": "FeatureCollection", "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}]`))
	assert.ErrorIs(t, err, model.ErrBadRequest)
}

func TestParseFeatures_InvalidGrade(t *testing.T) {
	_, err := ParseFeatures(decodeDocuments(t, `[{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}, "properties": {"grade": 9}}]`))
	assert.ErrorIs(t, err, model.ErrInvalidGrade)
	assert.Contains(t, err.Error(), "features[0]")
}

func TestParseRasterSpec(t *testing.T) {
	four := 4
	zero := 0
	huge := 20000

	spec, err := ParseRasterSpec(&four, &four, 16384)
	require.NoError(t, err)
	assert.Equal(t, model.RasterSpec{Width: 4, Height: 4}, spec)

	_, err = ParseRasterSpec(nil, &four, 16384)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	_, err = ParseRasterSpec(&four, &zero, 16384)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	_, err = ParseRasterSpec(&huge, &four, 16384)
	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "width/height", validationErr.Field)
}
