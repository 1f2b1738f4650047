package model

// RasterSpec 出力ラスタのサイズ（ピクセル）
type RasterSpec struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelCount 総ピクセル数
func (s RasterSpec) PixelCount() int {
	return s.Width * s.Height
}

// Raster 単一バンド8bitラスタ（行優先、背景は0）
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster 全画素0のラスタを作成
func NewRaster(spec RasterSpec) *Raster {
	return &Raster{
		Width:  spec.Width,
		Height: spec.Height,
		Pix:    make([]uint8, spec.PixelCount()),
	}
}

// At (x, y) の画素値
func (r *Raster) At(x, y int) uint8 {
	return r.Pix[y*r.Width+x]
}

// Row y行目のスライス
func (r *Raster) Row(y int) []uint8 {
	return r.Pix[y*r.Width : (y+1)*r.Width]
}

// Band ポリゴン化の入力となるバンド1の値（行優先）
type Band struct {
	Width  int
	Height int
	Values []uint16
}

// At (x, y) の値
func (b *Band) At(x, y int) uint16 {
	return b.Values[y*b.Width+x]
}
