package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/repository"
	"GeoConvert-App/internal/usecase"
)

// uploadFieldName ポリゴン化するラスタのmultipartフィールド名
const uploadFieldName = "file"

// ConversionHandler ポリゴン化・ラスタライズのHTTPハンドラー
type ConversionHandler struct {
	polygonizeUseCase usecase.PolygonizeUseCase
	rasterizeUseCase  usecase.RasterizeUseCase
	files             repository.TempFileRepository
	maxUploadBytes    int64
	logger            *zap.Logger
}

// NewConversionHandler ConversionHandlerの新しいインスタンスを作成
func NewConversionHandler(
	polygonizeUseCase usecase.PolygonizeUseCase,
	rasterizeUseCase usecase.RasterizeUseCase,
	files repository.TempFileRepository,
	maxUploadBytes int64,
	logger *zap.Logger,
) *ConversionHandler {
	return &ConversionHandler{
		polygonizeUseCase: polygonizeUseCase,
		rasterizeUseCase:  rasterizeUseCase,
		files:             files,
		maxUploadBytes:    maxUploadBytes,
		logger:            logger,
	}
}

// Polygonize POST /polygonize - ラスタをGeoJSONフィーチャーの配列に変換
// multipart の "file" フィールド、またはボディそのものをラスタとして受け付ける
// format=shapefile ならシェープファイル一式をzipで返す
func (h *ConversionHandler) Polygonize(c *gin.Context) {
	maskZero, _, err := parseFlag(c, "mask")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	format, err := model.ParseVectorFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	session := h.files.NewSession()
	defer func() { _ = session.Close() }()

	upload, err := openUpload(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	opts := model.PolygonizeOptions{MaskZero: maskZero}
	if format == model.VectorFormatShapefile {
		archive, err := h.polygonizeUseCase.PolygonizeShapefile(c.Request.Context(), session, upload, opts)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+usecase.ShapefileArchiveName+`.zip"`)
		c.Data(http.StatusOK, "application/zip", archive)
		return
	}

	features, err := h.polygonizeUseCase.Polygonize(c.Request.Context(), session, upload, opts)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, features)
}

// Rasterize POST /rasterize - フィーチャーをラスタ画像に変換してそのまま返す
func (h *ConversionHandler) Rasterize(c *gin.Context) {
	opts, err := renderOptionsFromQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	format, err := model.ParseOutputFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	session := h.files.NewSession()
	defer func() { _ = session.Close() }()

	result, err := h.rasterizeUseCase.Rasterize(c.Request.Context(), session, c.Request.Body, opts, format)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// RasterizeGrayscale POST /rasterize-grayscale - 評価区分ごとの濃度でTIFFファイルを作成して返す
func (h *ConversionHandler) RasterizeGrayscale(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	session := h.files.NewSession()
	defer func() { _ = session.Close() }()

	opts := model.RenderOptions{Mode: model.RenderModeGradeColored}
	path, err := h.rasterizeUseCase.RasterizeToFile(c.Request.Context(), session, c.Request.Body, opts)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// .tif は標準のMIMEテーブルにないため明示する
	c.Header("Content-Type", "image/tiff")
	c.File(path)
}

// openUpload multipart なら "file" パートを、それ以外はボディを返す
func openUpload(c *gin.Context) (io.Reader, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return c.Request.Body, nil
	}

	reader, err := c.Request.MultipartReader()
	if err != nil {
		return nil, &model.ValidationError{Field: uploadFieldName, Message: "invalid multipart body: " + err.Error()}
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, &model.ValidationError{Field: uploadFieldName, Message: "file field is required"}
		}
		if err != nil {
			return nil, multipartError(err)
		}
		if part.FormName() == uploadFieldName {
			return part, nil
		}
	}
}

func multipartError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return &model.ValidationError{Field: uploadFieldName, Message: "invalid multipart body: " + err.Error()}
}
