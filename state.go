package rast

import (
	"fmt"

	"github.com/gogpu/rast/internal/blend"
	"github.com/gogpu/rast/texture"
)

// BlendMode selects how a shaded pixel combines with the color already in
// the framebuffer.
type BlendMode uint8

const (
	// BlendNone overwrites the destination pixel.
	BlendNone BlendMode = iota

	// BlendAlpha is standard source-over alpha blending.
	BlendAlpha

	// BlendAdditive adds the source scaled by its alpha to the
	// destination, clamping at white.
	BlendAdditive

	blendModeCount
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "none"
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// internalMode maps the public mode onto the blend kernel's mode.
func (m BlendMode) internalMode() blend.Mode {
	switch m {
	case BlendAlpha:
		return blend.ModeAlpha
	case BlendAdditive:
		return blend.ModeAdditive
	default:
		return blend.ModeNone
	}
}

// CullMode selects which triangle winding is discarded before
// rasterization. Front faces wind clockwise in window coordinates
// (y grows downward).
type CullMode uint8

const (
	// CullNone rasterizes both windings; counter-clockwise triangles
	// are reordered to clockwise first.
	CullNone CullMode = iota

	// CullBack discards counter-clockwise triangles.
	CullBack

	// CullFront discards clockwise triangles.
	CullFront

	cullModeCount
)

// String returns the cull mode name.
func (m CullMode) String() string {
	switch m {
	case CullNone:
		return "none"
	case CullBack:
		return "back"
	case CullFront:
		return "front"
	default:
		return "unknown"
	}
}

// DrawState is the fixed-function pipeline configuration of one draw call.
// The zero value draws untextured, unblended, depth-ignoring triangles.
type DrawState struct {
	// DepthTest compares interpolated depth against the depth plane;
	// a pixel passes when its depth is less than the stored value.
	DepthTest bool

	// DepthWrite stores the interpolated depth of passing pixels.
	// It has no effect unless DepthTest is set.
	DepthWrite bool

	// Blend selects the color blend mode.
	Blend BlendMode

	// Cull selects back- or front-face culling.
	Cull CullMode

	// Texture, when non-nil, is sampled per pixel and modulated with the
	// interpolated vertex color. When nil the vertex color is used alone
	// and Filter is ignored.
	Texture *texture.Texture

	// Filter selects the texture reconstruction filter.
	Filter texture.FilterMode

	// AlphaRef discards pixels whose post-modulate alpha is below this
	// threshold. Zero disables the alpha test.
	AlphaRef uint8
}

// validate fails fast before any framebuffer state is touched, so a
// rejected draw call never leaves partial output.
func (s *DrawState) validate() error {
	if s.Blend >= blendModeCount {
		return fmt.Errorf("%w (%d)", ErrInvalidBlendMode, s.Blend)
	}
	if s.Cull >= cullModeCount {
		return fmt.Errorf("%w (%d)", ErrInvalidCullMode, s.Cull)
	}
	if s.Texture != nil && !s.Filter.Valid() {
		return fmt.Errorf("%w (%d)", ErrInvalidFilterMode, s.Filter)
	}
	return nil
}
