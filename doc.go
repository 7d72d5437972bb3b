// Package rast is a CPU triangle rasterizer.
//
// It consumes screen-space triangles (position, color, texture coordinate
// and normal per vertex) and renders them into an address-mapped
// framebuffer of color, depth and normal planes. Coverage uses fixed-point
// edge functions with the top-left fill rule, so triangles sharing an edge
// rasterize watertight: every pixel on the shared edge is owned by exactly
// one triangle, with no gaps and no double blending.
//
// The framebuffer is partitioned into 64x64 tiles, each owned by exactly
// one worker during a draw call, which makes the per-pixel hot path
// lock-free. Within a tile, triangles are processed in submission order;
// Draw blocks until every tile has finished, so the framebuffer is
// consistent whenever Draw returns.
//
// Basic usage:
//
//	r, err := rast.NewRenderer(640, 480)
//	if err != nil {
//		// handle error
//	}
//	defer r.Close()
//
//	r.Clear(rast.RGBA{R: 16, G: 16, B: 24, A: 255})
//	stats, err := r.Draw(vertices, indices, rast.DrawState{
//		DepthTest:  true,
//		DepthWrite: true,
//		Blend:      rast.BlendAlpha,
//	})
//	img := r.Image()
//
// Output is deterministic: the same vertices, indices and state produce
// byte-identical framebuffers regardless of worker count.
package rast
