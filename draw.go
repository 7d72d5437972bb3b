package rast

import (
	"fmt"
	"math"

	"github.com/gogpu/rast/internal/blend"
	"github.com/gogpu/rast/internal/edge"
	"github.com/gogpu/rast/internal/fixed"
	"github.com/gogpu/rast/internal/parallel"
	"github.com/gogpu/rast/texture"
)

// shadedTriangle is the immutable per-triangle state consumed by tile
// jobs. Vertex attributes are premultiplied by the reciprocal clip w, so
// the per-pixel interpolation recovers the perspective-correct value as
//
//	attr = sum(l_i * attrW_i) / sum(l_i * w_i)
type shadedTriangle struct {
	setup edge.Setup

	// z is interpolated affinely in screen space (depth is linear in
	// window coordinates after projection).
	z [3]float32

	w       [3]float32
	colorW  [3][4]float32
	uvW     [3][2]float32
	normalW [3][3]float32

	sampler  texture.Sampler
	textured bool
}

// rasterState is the per-draw pipeline state handed to every tile job.
type rasterState struct {
	mode       blend.Mode
	depthTest  bool
	depthWrite bool
	alphaRef   uint8
}

// screenPos is a vertex position converted to fixed point exactly once
// per draw call; both binning and edge setup consume the same values.
type screenPos struct {
	x, y fixed.Coord
	ok   bool
}

// Draw rasterizes the indexed triangles into the framebuffer and blocks
// until every tile has finished; when it returns, the framebuffer is
// fully consistent. Triangles with invalid geometry are skipped and
// counted in the returned stats; invalid state or indices fail the whole
// call before any pixel is touched.
//
// Within a tile, triangles blend in submission order. Output is
// deterministic for a given input regardless of the worker count.
func (r *Renderer) Draw(vertices []Vertex, indices []uint32, state DrawState) (DrawStats, error) {
	var stats DrawStats
	if err := state.validate(); err != nil {
		return stats, err
	}
	if len(indices)%3 != 0 {
		return stats, fmt.Errorf("%w (got %d)", ErrIndexCount, len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return stats, fmt.Errorf("%w (index %d of %d vertices)", ErrIndexRange, idx, len(vertices))
		}
	}
	if err := r.acquire(); err != nil {
		return stats, err
	}
	defer r.busy.Store(false)

	pos := make([]screenPos, len(vertices))
	for i := range vertices {
		p := &vertices[i].Position
		x, okx := fixed.FromFloat(p[0])
		y, oky := fixed.FromFloat(p[1])
		pos[i] = screenPos{x: x, y: y, ok: okx && oky && isFinite(p[2]) && isFinite(p[3])}
	}

	stats.Triangles = len(indices) / 3
	tris := make([]shadedTriangle, 0, stats.Triangles)
	bins := make([][]int32, r.grid.TileCount())
	tilesX := r.grid.TilesX()

	for t := 0; t < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		if !pos[i0].ok || !pos[i1].ok || !pos[i2].ok {
			stats.NonFinite++
			continue
		}

		orient := edge.Orientation(
			pos[i0].x, pos[i0].y,
			pos[i1].x, pos[i1].y,
			pos[i2].x, pos[i2].y)
		if orient == 0 {
			stats.Degenerate++
			continue
		}
		clockwise := orient > 0
		if (state.Cull == CullBack && !clockwise) || (state.Cull == CullFront && clockwise) {
			stats.Culled++
			continue
		}
		if !clockwise {
			i1, i2 = i2, i1
		}

		setup, ok := edge.New(
			pos[i0].x, pos[i0].y,
			pos[i1].x, pos[i1].y,
			pos[i2].x, pos[i2].y)
		if !ok {
			stats.Degenerate++
			continue
		}

		minX := max(setup.MinX, 0)
		minY := max(setup.MinY, 0)
		maxX := min(setup.MaxX, r.width-1)
		maxY := min(setup.MaxY, r.height-1)
		if minX > maxX || minY > maxY {
			stats.Offscreen++
			continue
		}

		id := int32(len(tris))
		tris = append(tris, newShadedTriangle(
			&vertices[i0], &vertices[i1], &vertices[i2], setup, &state))

		tx0, ty0, tx1, ty1, ok := r.grid.TileRange(minX, minY, maxX, maxY)
		if !ok {
			stats.Offscreen++
			tris = tris[:id]
			continue
		}
		for ty := ty0; ty <= ty1; ty++ {
			for tx := tx0; tx <= tx1; tx++ {
				bins[ty*tilesX+tx] = append(bins[ty*tilesX+tx], id)
			}
		}
		stats.Rasterized++
	}

	rs := rasterState{
		mode:       state.Blend.internalMode(),
		depthTest:  state.DepthTest,
		depthWrite: state.DepthTest && state.DepthWrite,
		alphaRef:   state.AlphaRef,
	}

	jobs := make([]parallel.Job, 0, len(bins))
	occupied := 0
	for ti, bin := range bins {
		if len(bin) == 0 {
			continue
		}
		occupied++
		tile := r.grid.TileAt(ti%tilesX, ti/tilesX)
		jobs = append(jobs, func() error {
			for _, id := range bin {
				rasterizeTriangle(&tris[id], tile, &rs)
			}
			return nil
		})
		r.dirty.Mark(ti%tilesX, ti/tilesX)
	}

	Logger().Debug("rast: draw dispatched",
		"triangles", stats.Triangles,
		"rasterized", stats.Rasterized,
		"skipped", stats.Skipped(),
		"tiles", occupied)

	return stats, joinErrors(r.pool.ExecuteAll(jobs))
}

// newShadedTriangle captures interpolation state for the (already
// clockwise) triangle v0, v1, v2 and configures its texture sampler.
func newShadedTriangle(v0, v1, v2 *Vertex, setup edge.Setup, state *DrawState) shadedTriangle {
	tri := shadedTriangle{setup: setup}
	for i, v := range [3]*Vertex{v0, v1, v2} {
		w := v.Position[3]
		tri.z[i] = v.Position[2]
		tri.w[i] = w
		for c := 0; c < 4; c++ {
			tri.colorW[i][c] = v.Color[c] * w
		}
		tri.uvW[i] = [2]float32{v.UV[0] * w, v.UV[1] * w}
		tri.normalW[i] = [3]float32{v.Normal[0] * w, v.Normal[1] * w, v.Normal[2] * w}
	}

	if state.Texture != nil {
		tri.textured = true
		tri.sampler = texture.NewSampler(state.Texture, state.Filter, triangleLOD(v0, v1, v2, state.Texture, setup.Area2))
	}
	return tri
}

// triangleLOD derives the mip selector from the screen-space rate of
// change of (u, v) across the triangle. The derivatives of an affine
// attribute are constant per triangle, so one level of detail serves the
// whole footprint.
func triangleLOD(v0, v1, v2 *Vertex, tex *texture.Texture, area2fixed int64) float32 {
	// area2fixed is in fixed^2 units; one pixel is fixed.One units.
	area2 := float32(area2fixed) / float32(fixed.One*fixed.One)

	x01 := v1.Position[0] - v0.Position[0]
	y01 := v1.Position[1] - v0.Position[1]
	x02 := v2.Position[0] - v0.Position[0]
	y02 := v2.Position[1] - v0.Position[1]
	u01 := v1.UV[0] - v0.UV[0]
	v01 := v1.UV[1] - v0.UV[1]
	u02 := v2.UV[0] - v0.UV[0]
	v02 := v2.UV[1] - v0.UV[1]

	inv := 1 / area2
	dudx := (u01*y02 - u02*y01) * inv
	dvdx := (v01*y02 - v02*y01) * inv
	dudy := (u02*x01 - u01*x02) * inv
	dvdy := (v02*x01 - v01*x02) * inv
	return tex.LevelOfDetail(dudx, dvdx, dudy, dvdy)
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
