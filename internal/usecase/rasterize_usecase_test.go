package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/service"
	"GeoConvert-App/internal/infrastructure/codec"
	"GeoConvert-App/internal/infrastructure/storage"
)

const squareRequest = `{"width": 4, "height": 4, "features": [
	{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]}, "properties": {"grade": 0}},
	{"geometry": {"type": "Polygon", "coordinates": [[[1,1],[4,1],[4,4],[1,4],[1,1]]]}, "properties": {"grade": 2}}
]}`

func newTestStore(t *testing.T) *storage.TempFileStore {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewTempFileStore(filepath.Join(root, "uploads"), filepath.Join(root, "output"), zap.NewNop())
	require.NoError(t, err)
	return store
}

func newRasterizeUseCase() RasterizeUseCase {
	logger := zap.NewNop()
	return NewRasterizeUseCase(service.NewBurnPlanner(logger), service.NewRasterizer(2), 16384, logger)
}

func TestRasterizeUseCase_GradeColored(t *testing.T) {
	store := newTestStore(t)
	session := store.NewSession()
	defer func() { _ = session.Close() }()

	result, err := newRasterizeUseCase().Rasterize(context.Background(), session, strings.NewReader(squareRequest),
		model.RenderOptions{Mode: model.RenderModeGradeColored}, model.OutputFormatTIFFDeflate)
	require.NoError(t, err)
	assert.Equal(t, "image/tiff", result.ContentType)

	band, _, err := codec.DecodeBand(strings.NewReader(string(result.Data)), 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(192), band.At(0, 0))
	// 重なりは後のフィーチャーが勝つ
	assert.Equal(t, uint16(96), band.At(1, 1))
	assert.Equal(t, uint16(0), band.At(3, 0))
}

func TestRasterizeUseCase_ToFile(t *testing.T) {
	store := newTestStore(t)
	session := store.NewSession()

	path, err := newRasterizeUseCase().RasterizeToFile(context.Background(), session, strings.NewReader(squareRequest),
		model.RenderOptions{Mode: model.RenderModePlain})
	require.NoError(t, err)
	assert.Equal(t, store.OutputDir(), filepath.Dir(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	band, format, err := codec.DecodeBand(f, 0)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "tiff", format)
	assert.Equal(t, uint16(255), band.At(3, 3))

	require.NoError(t, session.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRasterizeUseCase_InvalidRequest(t *testing.T) {
	store := newTestStore(t)
	session := store.NewSession()
	defer func() { _ = session.Close() }()

	_, err := newRasterizeUseCase().Rasterize(context.Background(), session, strings.NewReader(`{"width": -1, "height": 4}`),
		model.RenderOptions{}, model.OutputFormatTIFF)

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "width", validationErr.Field)
}
