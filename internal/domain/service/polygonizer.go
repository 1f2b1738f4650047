package service

import (
	"context"

	"github.com/paulmach/orb"

	"GeoConvert-App/internal/domain/model"
)

// Polygonizer ラスタの同値連結領域をポリゴンに変換する
type Polygonizer interface {
	Polygonize(ctx context.Context, band *model.Band, opts model.PolygonizeOptions) ([]orb.Polygon, error)
}

// regionPolygonizer 4近傍で連結領域を求め、境界辺をたどってリングを作る
type regionPolygonizer struct{}

// NewPolygonizer 新しいPolygonizerを作成
func NewPolygonizer() Polygonizer {
	return &regionPolygonizer{}
}

// 境界辺の向き（x右、y下の画素座標）
const (
	dirRight = iota
	dirDown
	dirLeft
	dirUp
)

var (
	dirDX = [4]int{1, 0, -1, 0}
	dirDY = [4]int{0, 1, 0, -1}
)

const maskedLabel int32 = -1

// Polygonize 領域は最初の画素の走査順、外周リングの後に穴が続く
func (p *regionPolygonizer) Polygonize(ctx context.Context, band *model.Band, opts model.PolygonizeOptions) ([]orb.Polygon, error) {
	if band.Width <= 0 || band.Height <= 0 {
		return nil, nil
	}

	labels, firsts, err := labelRegions(ctx, band, opts)
	if err != nil {
		return nil, err
	}

	t := &boundaryTracer{
		width:  band.Width,
		height: band.Height,
		labels: labels,
		edges:  make([]uint8, (band.Width+1)*(band.Height+1)),
	}
	if err := t.collectEdges(ctx); err != nil {
		return nil, err
	}

	polygons := make([]orb.Polygon, len(firsts))
	for label, first := range firsts {
		if label%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		x, y := first%band.Width, first/band.Width
		polygons[label] = orb.Polygon{t.trace(t.vertex(x, y), dirRight, int32(label))}
	}

	// 外周を除いた残りの境界辺はすべて穴
	for y := 0; y < band.Height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < band.Width; x++ {
			label := labels[y*band.Width+x]
			if label == maskedLabel {
				continue
			}
			sides := [4]struct{ v, dir int }{
				{t.vertex(x, y), dirRight},
				{t.vertex(x+1, y), dirDown},
				{t.vertex(x+1, y+1), dirLeft},
				{t.vertex(x, y+1), dirUp},
			}
			for _, side := range sides {
				if t.edges[side.v]&(1<<side.dir) != 0 {
					polygons[label] = append(polygons[label], t.trace(side.v, side.dir, label))
				}
			}
		}
	}

	return polygons, nil
}

// labelRegions 4近傍の同値領域にラベルを付ける。firsts[label] は領域の最初の画素
func labelRegions(ctx context.Context, band *model.Band, opts model.PolygonizeOptions) ([]int32, []int, error) {
	w, h := band.Width, band.Height
	labels := make([]int32, w*h)
	for i := range labels {
		labels[i] = maskedLabel
	}

	var firsts []int
	var stack []int
	for i := range labels {
		if i%w == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		if labels[i] != maskedLabel {
			continue
		}
		value := band.Values[i]
		if opts.MaskZero && value == 0 {
			continue
		}

		label := int32(len(firsts))
		firsts = append(firsts, i)
		labels[i] = label
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cx, cy := cur%w, cur/w
			for d := 0; d < 4; d++ {
				nx, ny := cx+dirDX[d], cy+dirDY[d]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				n := ny*w + nx
				if labels[n] == maskedLabel && band.Values[n] == value {
					labels[n] = label
					stack = append(stack, n)
				}
			}
		}
	}
	return labels, firsts, nil
}

// boundaryTracer 頂点ごとに未使用の境界辺の向きをビットで保持する
// 辺は進行方向の右側（画面上）にその辺を持つ画素がある
type boundaryTracer struct {
	width  int
	height int
	labels []int32
	edges  []uint8
}

func (t *boundaryTracer) vertex(x, y int) int {
	return y*(t.width+1) + x
}

func (t *boundaryTracer) point(v int) orb.Point {
	return orb.Point{float64(v % (t.width + 1)), float64(v / (t.width + 1))}
}

func (t *boundaryTracer) labelAt(x, y int) int32 {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return maskedLabel
	}
	return t.labels[y*t.width+x]
}

func (t *boundaryTracer) collectEdges(ctx context.Context) error {
	for y := 0; y < t.height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < t.width; x++ {
			label := t.labels[y*t.width+x]
			if label == maskedLabel {
				continue
			}
			if t.labelAt(x, y-1) != label {
				t.edges[t.vertex(x, y)] |= 1 << dirRight
			}
			if t.labelAt(x+1, y) != label {
				t.edges[t.vertex(x+1, y)] |= 1 << dirDown
			}
			if t.labelAt(x, y+1) != label {
				t.edges[t.vertex(x+1, y+1)] |= 1 << dirLeft
			}
			if t.labelAt(x-1, y) != label {
				t.edges[t.vertex(x, y+1)] |= 1 << dirUp
			}
		}
	}
	return nil
}

// owner 頂点vから向きdirに出る辺を持つ画素のラベル
func (t *boundaryTracer) owner(v, dir int) int32 {
	vx, vy := v%(t.width+1), v/(t.width+1)
	switch dir {
	case dirRight:
		return t.labelAt(vx, vy)
	case dirDown:
		return t.labelAt(vx-1, vy)
	case dirLeft:
		return t.labelAt(vx-1, vy-1)
	default:
		return t.labelAt(vx, vy-1)
	}
}

// trace 開始辺に戻るまで辺をたどり、向きが変わる頂点だけを残した閉じたリングを返す
// 対角で接する画素（鞍点）では右折を優先し、4近傍で別領域の画素を分離する
func (t *boundaryTracer) trace(startV, startDir int, label int32) orb.Ring {
	var ring orb.Ring
	v, dir, prev := startV, startDir, -1

	for {
		t.edges[v] &^= 1 << dir
		if dir != prev {
			ring = append(ring, t.point(v))
		}
		prev = dir
		v += dirDY[dir]*(t.width+1) + dirDX[dir]

		next := -1
		for _, candidate := range [3]int{(dir + 1) % 4, dir, (dir + 3) % 4} {
			if v == startV && candidate == startDir {
				next = candidate
				break
			}
			if t.edges[v]&(1<<candidate) != 0 && t.owner(v, candidate) == label {
				next = candidate
				break
			}
		}
		if next == -1 || (v == startV && next == startDir) {
			break
		}
		dir = next
	}

	if prev == startDir && len(ring) > 1 {
		ring = ring[1:]
	}
	return append(ring, ring[0])
}
