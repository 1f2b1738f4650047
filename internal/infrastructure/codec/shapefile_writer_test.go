package codec

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteShapefile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "regions")
	polygons := []orb.Polygon{
		{
			{{0, 0}, {3, 0}, {3, 3}, {0, 3}, {0, 0}},
			{{2, 1}, {1, 1}, {1, 2}, {2, 2}, {2, 1}},
		},
		{{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}},
	}
	require.NoError(t, WriteShapefile(base, polygons))

	reader, err := shp.Open(base + ".shp")
	require.NoError(t, err)
	defer reader.Close()

	count := 0
	for reader.Next() {
		n, shape := reader.Shape()
		polygon, ok := shape.(*shp.Polygon)
		require.True(t, ok, "got %T", shape)
		assert.Equal(t, len(polygons[n]), int(polygon.NumParts))
		assert.Equal(t, []string{"0", "1"}[n], strings.Trim(reader.ReadAttribute(n, 0), " \x00"))
		count++
	}
	assert.Equal(t, 2, count)
}

func TestWriteShapefile_OuterRingIsClockwise(t *testing.T) {
	base := filepath.Join(t.TempDir(), "square")
	require.NoError(t, WriteShapefile(base, []orb.Polygon{{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}}))

	reader, err := shp.Open(base + ".shp")
	require.NoError(t, err)
	defer reader.Close()

	require.True(t, reader.Next())
	_, shape := reader.Shape()
	polygon := shape.(*shp.Polygon)
	assert.Equal(t, []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 0}}, polygon.Points)
}

func TestZipShapefile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "0f0e")
	require.NoError(t, WriteShapefile(base, []orb.Polygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}}))

	var buf bytes.Buffer
	require.NoError(t, ZipShapefile(&buf, base, "polygons"))

	archive, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range archive.File {
		names = append(names, f.Name)
		assert.Positive(t, f.UncompressedSize64, f.Name)
	}
	assert.Equal(t, []string{"polygons.shp", "polygons.shx", "polygons.dbf"}, names)
}
