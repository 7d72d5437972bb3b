package rast

import "golang.org/x/image/math/f32"

// Vertex is one corner of a screen-space triangle. Vertices enter the
// rasterizer already projected: Position holds window coordinates, not
// clip space.
type Vertex struct {
	// Position is (x, y, z, w) with x and y in pixels (y grows downward),
	// z the depth value compared against the depth buffer, and w the
	// reciprocal clip-space w (1/w), used for perspective-correct
	// attribute interpolation. Set w to 1 for orthographic input.
	Position f32.Vec4

	// Color is the vertex color in [0, 1] per channel, modulated with
	// the sampled texel when a texture is bound.
	Color f32.Vec4

	// UV is the texture coordinate; (0, 0) is the texture's top-left
	// corner and coordinates wrap at every whole repeat.
	UV f32.Vec2

	// Normal is carried through interpolation into the normal plane of
	// the framebuffer; the rasterizer does not normalize it.
	Normal f32.Vec3
}

// RGBA is an 8-bit color as stored in the framebuffer's color plane.
type RGBA struct {
	R, G, B, A uint8
}
