package service

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GeoConvert-App/internal/domain/model"
)

func bandOf(rows [][]uint16) *model.Band {
	band := &model.Band{Width: len(rows[0]), Height: len(rows)}
	for _, row := range rows {
		band.Values = append(band.Values, row...)
	}
	return band
}

func bandFromRaster(r *model.Raster) *model.Band {
	band := &model.Band{Width: r.Width, Height: r.Height, Values: make([]uint16, len(r.Pix))}
	for i, v := range r.Pix {
		band.Values[i] = uint16(v)
	}
	return band
}

func TestPolygonize_UniformRaster(t *testing.T) {
	band := bandOf([][]uint16{
		{7, 7, 7, 7},
		{7, 7, 7, 7},
		{7, 7, 7, 7},
		{7, 7, 7, 7},
	})

	polygons, err := NewPolygonizer().Polygonize(context.Background(), band, model.PolygonizeOptions{})
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Equal(t, square(0, 0, 4, 4), polygons[0])
}

func TestPolygonize_RegionWithHole(t *testing.T) {
	band := bandOf([][]uint16{
		{1, 1, 1},
		{1, 2, 1},
		{1, 1, 1},
	})

	polygons, err := NewPolygonizer().Polygonize(context.Background(), band, model.PolygonizeOptions{})
	require.NoError(t, err)
	require.Len(t, polygons, 2)

	outer := polygons[0]
	require.Len(t, outer, 2)
	assert.Equal(t, orb.CCW, outer[0].Orientation())
	assert.Equal(t, orb.CW, outer[1].Orientation())
	assert.InDelta(t, 8.0, planar.Area(outer), 1e-9)

	assert.Equal(t, square(1, 1, 2, 2), polygons[1])
}

func TestPolygonize_DiagonalPixelsAreSeparate(t *testing.T) {
	band := bandOf([][]uint16{
		{1, 0},
		{0, 1},
	})

	polygons, err := NewPolygonizer().Polygonize(context.Background(), band, model.PolygonizeOptions{})
	require.NoError(t, err)
	require.Len(t, polygons, 4)

	assert.Equal(t, square(0, 0, 1, 1), polygons[0])
	assert.Equal(t, square(1, 0, 2, 1), polygons[1])
	assert.Equal(t, square(0, 1, 1, 2), polygons[2])
	assert.Equal(t, square(1, 1, 2, 2), polygons[3])
}

func TestPolygonize_RemovesCollinearVertices(t *testing.T) {
	band := bandOf([][]uint16{
		{1, 1},
		{1, 0},
	})

	polygons, err := NewPolygonizer().Polygonize(context.Background(), band, model.PolygonizeOptions{})
	require.NoError(t, err)
	require.Len(t, polygons, 2)

	assert.Equal(t, orb.Polygon{{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}, {0, 0}}}, polygons[0])
	assert.InDelta(t, 3.0, planar.Area(polygons[0]), 1e-9)
}

func TestPolygonize_EveryPixelParticipates(t *testing.T) {
	band := bandOf([][]uint16{
		{0, 0, 0, 0},
		{0, 5, 5, 0},
		{0, 0, 0, 0},
	})

	polygons, err := NewPolygonizer().Polygonize(context.Background(), band, model.PolygonizeOptions{})
	require.NoError(t, err)

	total := 0.0
	for _, p := range polygons {
		total += planar.Area(p)
	}
	assert.Len(t, polygons, 2)
	assert.InDelta(t, 12.0, total, 1e-9)
}

func TestPolygonize_MaskZero(t *testing.T) {
	band := bandOf([][]uint16{
		{0, 0, 0, 0},
		{0, 5, 5, 0},
		{0, 0, 0, 0},
	})

	polygons, err := NewPolygonizer().Polygonize(context.Background(), band, model.PolygonizeOptions{MaskZero: true})
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Equal(t, square(1, 1, 3, 2), polygons[0])
}

func TestRoundTrip_FullCanvas(t *testing.T) {
	raster, err := NewRasterizer(2).Rasterize(context.Background(),
		shapesOf(model.BurnShape{Geometry: square(0, 0, 4, 4), Value: 255}),
		model.RasterSpec{Width: 4, Height: 4},
	)
	require.NoError(t, err)

	polygons, err := NewPolygonizer().Polygonize(context.Background(), bandFromRaster(raster), model.PolygonizeOptions{})
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Equal(t, square(0, 0, 4, 4), polygons[0])
}

func TestRoundTrip_PixelAlignedShape(t *testing.T) {
	shape := square(1, 1, 3, 3)
	raster, err := NewRasterizer(1).Rasterize(context.Background(),
		shapesOf(model.BurnShape{Geometry: shape, Value: 255}),
		model.RasterSpec{Width: 5, Height: 5},
	)
	require.NoError(t, err)

	polygons, err := NewPolygonizer().Polygonize(context.Background(), bandFromRaster(raster), model.PolygonizeOptions{MaskZero: true})
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Equal(t, shape, polygons[0])
}

func TestPolygonize_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPolygonizer().Polygonize(ctx, bandOf([][]uint16{{1}}), model.PolygonizeOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
