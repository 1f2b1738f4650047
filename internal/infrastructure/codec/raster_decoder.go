package codec

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"GeoConvert-App/internal/domain/model"
)

// DecodeBand 画像を読み込み、バンド1の値を返す
// サイズは本体を展開する前に DecodeConfig で確認する
func DecodeBand(r io.ReadSeeker, maxDimension int) (*model.Band, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", model.ErrUnreadableInput, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, fmt.Errorf("%w: empty raster", model.ErrUnreadableInput)
	}
	if maxDimension > 0 && (cfg.Width > maxDimension || cfg.Height > maxDimension) {
		return nil, format, &model.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("raster %dx%d exceeds the maximum dimension %d", cfg.Width, cfg.Height, maxDimension),
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, format, fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", model.ErrUnreadableInput, err)
	}

	return bandFromImage(img), format, nil
}

// bandFromImage グレースケールは輝度、パレットはインデックス、それ以外は赤チャンネル
func bandFromImage(img image.Image) *model.Band {
	bounds := img.Bounds()
	band := &model.Band{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Values: make([]uint16, bounds.Dx()*bounds.Dy()),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch src := img.(type) {
			case *image.Gray:
				band.Values[i] = uint16(src.GrayAt(x, y).Y)
			case *image.Gray16:
				band.Values[i] = src.Gray16At(x, y).Y
			case *image.Paletted:
				band.Values[i] = uint16(src.ColorIndexAt(x, y))
			default:
				r, _, _, _ := img.At(x, y).RGBA()
				band.Values[i] = uint16(r >> 8)
			}
			i++
		}
	}
	return band
}
