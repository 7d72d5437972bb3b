package rast

import (
	"github.com/gogpu/rast/internal/blend"
	"github.com/gogpu/rast/internal/parallel"
)

// rasterizeTriangle scans one triangle's footprint inside one tile.
// The tile is owned exclusively by the calling job during the draw, so
// every plane write is unsynchronized.
func rasterizeTriangle(t *shadedTriangle, tile *parallel.Tile, rs *rasterState) {
	tileX, tileY, tileW, tileH := tile.Bounds()
	x0 := max(t.setup.MinX, tileX)
	y0 := max(t.setup.MinY, tileY)
	x1 := min(t.setup.MaxX, tileX+tileW-1)
	y1 := min(t.setup.MaxY, tileY+tileH-1)
	if x0 > x1 || y0 > y1 {
		return
	}

	// Edge values are evaluated once at the top-left covered candidate
	// and stepped incrementally; integer steps keep the scan exact.
	row := t.setup.EvalAt(x0, y0)
	for y := y0; y <= y1; y++ {
		e := row
		idx := (y-tileY)*tileW + (x0 - tileX)
		for x := x0; x <= x1; x++ {
			if t.setup.Covered(e) {
				shadePixel(t, tile, rs, e, idx)
			}
			e[0] += t.setup.StepX[0]
			e[1] += t.setup.StepX[1]
			e[2] += t.setup.StepX[2]
			idx++
		}
		row[0] += t.setup.StepY[0]
		row[1] += t.setup.StepY[1]
		row[2] += t.setup.StepY[2]
	}
}

// shadePixel runs the per-pixel pipeline at tile-local index idx: depth
// test, perspective-correct attribute interpolation, texture sampling,
// alpha test, blend, and the depth and normal writes.
func shadePixel(t *shadedTriangle, tile *parallel.Tile, rs *rasterState, e [3]int64, idx int) {
	l0, l1, l2 := t.setup.Barycentric(e)

	z := l0*t.z[0] + l1*t.z[1] + l2*t.z[2]
	if rs.depthTest && !(z < tile.Depth[idx]) {
		return
	}

	invW := 1 / (l0*t.w[0] + l1*t.w[1] + l2*t.w[2])

	var src [4]byte
	for c := range src {
		src[c] = unitToByte((l0*t.colorW[0][c] + l1*t.colorW[1][c] + l2*t.colorW[2][c]) * invW)
	}
	if t.textured {
		u := (l0*t.uvW[0][0] + l1*t.uvW[1][0] + l2*t.uvW[2][0]) * invW
		v := (l0*t.uvW[0][1] + l1*t.uvW[1][1] + l2*t.uvW[2][1]) * invW
		src = blend.Modulate(src, t.sampler.Sample(u, v))
	}
	if rs.alphaRef > 0 && src[3] < rs.alphaRef {
		return
	}

	blend.Pixel(tile.Color[idx*4:idx*4+4], src, rs.mode)

	n := idx * 3
	tile.Normal[n] = (l0*t.normalW[0][0] + l1*t.normalW[1][0] + l2*t.normalW[2][0]) * invW
	tile.Normal[n+1] = (l0*t.normalW[0][1] + l1*t.normalW[1][1] + l2*t.normalW[2][1]) * invW
	tile.Normal[n+2] = (l0*t.normalW[0][2] + l1*t.normalW[1][2] + l2*t.normalW[2][2]) * invW

	if rs.depthWrite {
		tile.Depth[idx] = z
	}
}

// unitToByte maps a [0, 1] value to 0..255 with rounding, clamping
// out-of-range and NaN inputs.
func unitToByte(v float32) byte {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
