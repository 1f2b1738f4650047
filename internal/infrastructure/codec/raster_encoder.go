package codec

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/tiff"

	"GeoConvert-App/internal/domain/model"
)

// ContentType 出力形式のMIMEタイプ
func ContentType(format model.OutputFormat) string {
	if format == model.OutputFormatPNG {
		return "image/png"
	}
	return "image/tiff"
}

// FileExtension 出力形式の拡張子
func FileExtension(format model.OutputFormat) string {
	if format == model.OutputFormatPNG {
		return ".png"
	}
	return ".tif"
}

// Encode ラスタを単一バンド8bitの画像として書き出す
func Encode(w io.Writer, raster *model.Raster, format model.OutputFormat) error {
	img := &image.Gray{
		Pix:    raster.Pix,
		Stride: raster.Width,
		Rect:   image.Rect(0, 0, raster.Width, raster.Height),
	}

	switch format {
	case model.OutputFormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Uncompressed})
	case model.OutputFormatTIFFDeflate:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case model.OutputFormatPNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
