package codec

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"GeoConvert-App/internal/domain/model"
)

// ShapefileExtensions シェープファイルを構成するファイルの拡張子
var ShapefileExtensions = []string{".shp", ".shx", ".dbf"}

// shapefileIDField 各ポリゴンの出力順を入れる属性
const shapefileIDField = "ID"

// WriteShapefile base+".shp" にポリゴンを書き出す（.shx と .dbf も同じ名前で作られる）
// 外周リングはシェープファイルの規約に合わせて時計回り（y上向き基準）に反転する
func WriteShapefile(base string, polygons []orb.Polygon) error {
	w, err := shp.Create(base+".shp", shp.POLYGON)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{shp.NumberField(shapefileIDField, 10)}); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}

	for i, polygon := range polygons {
		parts := make([][]shp.Point, 0, len(polygon))
		for _, ring := range polygon {
			points := make([]shp.Point, len(ring))
			for j := range ring {
				p := ring[len(ring)-1-j]
				points[j] = shp.Point{X: p[0], Y: p[1]}
			}
			parts = append(parts, points)
		}

		shape := shp.Polygon(*shp.NewPolyLine(parts))
		row := w.Write(&shape)
		if err := w.WriteAttribute(int(row), 0, i); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
		}
	}
	return nil
}

// ZipShapefile base のシェープファイル一式を name.shp などの名前でzipにまとめる
func ZipShapefile(w io.Writer, base, name string) error {
	archive := zip.NewWriter(w)
	for _, ext := range ShapefileExtensions {
		if err := addZipEntry(archive, base+ext, name+ext); err != nil {
			return err
		}
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	return nil
}

func addZipEntry(archive *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	defer f.Close()

	entry, err := archive.Create(filepath.Base(name))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	return nil
}
