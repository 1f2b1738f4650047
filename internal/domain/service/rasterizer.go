package service

import (
	"context"
	"iter"
	"math"
	"runtime"
	"slices"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"GeoConvert-App/internal/domain/model"
)

// Rasterizer ポリゴンをラスタに焼き込む
type Rasterizer interface {
	// Rasterize shapes は一度だけ消費される。後のフィーチャーが前の画素を上書きする
	Rasterize(ctx context.Context, shapes iter.Seq[model.BurnShape], spec model.RasterSpec) (*model.Raster, error)
}

// scanlineRasterizer 画素中心で内外判定するスキャンライン方式
type scanlineRasterizer struct {
	workers int
}

// NewRasterizer 新しいRasterizerを作成（workers<=0 なら GOMAXPROCS）
func NewRasterizer(workers int) Rasterizer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &scanlineRasterizer{workers: workers}
}

type segment struct {
	x1, y1, x2, y2 float64
}

type preparedShape struct {
	bound    orb.Bound
	polygons [][]segment
	value    uint8
}

// Rasterize 行をバンドに分けて並行に処理する。各行の中ではフィーチャーを入力順に適用する
func (r *scanlineRasterizer) Rasterize(ctx context.Context, shapes iter.Seq[model.BurnShape], spec model.RasterSpec) (*model.Raster, error) {
	prepared := prepareShapes(shapes)
	raster := model.NewRaster(spec)

	workers := min(r.workers, spec.Height)
	if workers < 1 {
		workers = 1
	}
	rowsPerBand := (spec.Height + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < spec.Height; start += rowsPerBand {
		end := min(start+rowsPerBand, spec.Height)
		g.Go(func() error {
			var xs []float64
			for y := start; y < end; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				xs = burnRow(raster.Row(y), y, prepared, xs)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raster, nil
}

func prepareShapes(shapes iter.Seq[model.BurnShape]) []preparedShape {
	var prepared []preparedShape
	for shape := range shapes {
		var polygons []orb.Polygon
		switch g := shape.Geometry.(type) {
		case orb.Polygon:
			polygons = []orb.Polygon{g}
		case orb.MultiPolygon:
			polygons = g
		default:
			continue
		}

		p := preparedShape{bound: shape.Geometry.Bound(), value: shape.Value}
		for _, polygon := range polygons {
			p.polygons = append(p.polygons, polygonSegments(polygon))
		}
		prepared = append(prepared, p)
	}
	return prepared
}

// polygonSegments 全リングの辺（閉じていないリングは閉じる。水平な辺は除外）
func polygonSegments(polygon orb.Polygon) []segment {
	var segments []segment
	for _, ring := range polygon {
		n := len(ring)
		if n == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			if a[1] == b[1] {
				continue
			}
			segments = append(segments, segment{x1: a[0], y1: a[1], x2: b[0], y2: b[1]})
		}
	}
	return segments
}

// burnRow 偶奇規則で画素中心が内側にある画素を塗る
func burnRow(row []uint8, y int, shapes []preparedShape, xs []float64) []float64 {
	cy := float64(y) + 0.5
	width := float64(len(row))

	for _, shape := range shapes {
		if cy < shape.bound.Min[1] || cy > shape.bound.Max[1] {
			continue
		}
		for _, segments := range shape.polygons {
			xs = xs[:0]
			for _, s := range segments {
				if (s.y1 <= cy && cy < s.y2) || (s.y2 <= cy && cy < s.y1) {
					xs = append(xs, s.x1+(cy-s.y1)*(s.x2-s.x1)/(s.y2-s.y1))
				}
			}
			if len(xs) < 2 {
				continue
			}
			slices.Sort(xs)

			for i := 0; i+1 < len(xs); i += 2 {
				// int に変換する前にキャンバス内に収める。NaN の区間も飛ばす
				from := math.Min(math.Max(math.Ceil(xs[i]-0.5), 0), width)
				to := math.Min(math.Max(math.Ceil(xs[i+1]-0.5), 0), width)
				if !(from < to) {
					continue
				}
				for x := int(from); x < int(to); x++ {
					row[x] = shape.value
				}
			}
		}
	}
	return xs
}
