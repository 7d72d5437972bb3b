package texture

import "math"

// FilterMode selects how the sampler reconstructs texel values.
type FilterMode uint8

const (
	// FilterNearest snaps to the closest texel of a single mip level.
	FilterNearest FilterMode = iota

	// FilterBilinear blends the 2x2 texel neighborhood of a single mip
	// level, the level chosen by rounding the level of detail.
	FilterBilinear

	// FilterTrilinear blends bilinear taps of the two mip levels
	// bracketing the level of detail.
	FilterTrilinear

	filterModeCount
)

// Valid reports whether m names a known filter mode.
func (m FilterMode) Valid() bool {
	return m < filterModeCount
}

// String returns the filter mode name.
func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterTrilinear:
		return "trilinear"
	default:
		return "unknown"
	}
}

// coordBias shifts texture coordinates positive before the float-to-fixed
// conversion so truncation behaves as floor. Coordinates are wrapped, so
// adding whole repeats never changes the sampled texel; callers stay
// within (-coordBias, +coordBias) repeats.
const coordBias = 8

// mipTap holds the per-level constants of one bilinear tap.
type mipTap struct {
	// scale converts a texture coordinate to 8.8 fixed-point texel
	// space: floor((u + coordBias) * scale) >> 8 is the texel column.
	scale float32

	// sub is subtracted after the fixed conversion: half a texel (128)
	// for the linear filters so the 2x2 neighborhood is centered on the
	// sample point, 0 for nearest.
	sub uint32

	// mask wraps texel indices (level dimension minus one).
	mask uint32

	// dim is the level dimension in texels.
	dim uint32

	// offset is the level's byte offset in the texel store.
	offset uint32
}

// Sampler reads texels from one texture with fixed filter settings. It is
// configured once per triangle (the level of detail is a per-triangle
// constant) and then invoked per covered pixel, so Sample carries no
// data-dependent branches: every filter mode runs the same weighted-sum
// kernel with weights shaped at construction time.
//
// A Sampler is a small value; copy it freely. It is safe for concurrent
// use because it only reads the immutable texture.
type Sampler struct {
	tex *Texture

	tap0, tap1 mipTap

	// fracMask is 255 for the linear filters and 0 for nearest; masking
	// the fractional weight to zero collapses the 2x2 kernel onto its
	// top-left tap.
	fracMask uint32

	// mipFrac is the 0..256 blend weight of tap1; 0 for single-level
	// filters, so the second tap contributes nothing.
	mipFrac uint32
}

// NewSampler builds a sampler for t with the given filter mode and level
// of detail. lod is clamped to the texture's mip range; non-finite values
// clamp to level 0.
func NewSampler(t *Texture, mode FilterMode, lod float32) Sampler {
	maxLevel := t.Levels() - 1
	if !(lod > 0) { // also catches NaN
		lod = 0
	}
	if lod > float32(maxLevel) {
		lod = float32(maxLevel)
	}

	s := Sampler{tex: t}

	var level0, level1 int
	switch mode {
	case FilterTrilinear:
		level0 = int(lod)
		level1 = level0
		if level0 < maxLevel {
			level1 = level0 + 1
		}
		s.mipFrac = uint32((lod - float32(level0)) * 256)
		s.fracMask = 255
	case FilterBilinear:
		level0 = int(lod + 0.5)
		level1 = level0
		s.fracMask = 255
	default: // FilterNearest
		level0 = int(lod + 0.5)
		level1 = level0
	}

	s.tap0 = t.makeTap(level0, s.fracMask)
	s.tap1 = t.makeTap(level1, s.fracMask)
	return s
}

func (t *Texture) makeTap(level int, fracMask uint32) mipTap {
	dim := uint32(t.size >> level)
	tap := mipTap{
		scale:  float32(dim) * 256,
		mask:   dim - 1,
		dim:    dim,
		offset: uint32(t.offsets[level]),
	}
	if fracMask != 0 {
		tap.sub = 128
	}
	return tap
}

// Sample returns the filtered RGBA8 value at texture coordinate (u, v).
// Coordinates wrap, with (0, 0) the top-left corner of the texture and
// (1, 1) one full repeat.
func (s *Sampler) Sample(u, v float32) [4]byte {
	c0 := s.bilinearTap(u, v, &s.tap0)
	c1 := s.bilinearTap(u, v, &s.tap1)

	f1 := s.mipFrac
	f0 := 256 - f1
	var out [4]byte
	for i := range out {
		out[i] = byte((c0[i]*f0 + c1[i]*f1) >> 8)
	}
	return out
}

// bilinearTap evaluates one 2x2 weighted sum on a single mip level,
// returning 0..255 channel values. With fracMask == 0 the fractional
// weights vanish and the sum degenerates to the top-left texel, which is
// exactly the nearest filter.
func (s *Sampler) bilinearTap(u, v float32, tap *mipTap) [4]uint32 {
	tu := uint32(int32((u+coordBias)*tap.scale)) - tap.sub
	tv := uint32(int32((v+coordBias)*tap.scale)) - tap.sub

	x0 := (tu >> 8) & tap.mask
	y0 := (tv >> 8) & tap.mask
	x1 := (x0 + 1) & tap.mask
	y1 := (y0 + 1) & tap.mask

	fx := tu & s.fracMask
	fy := tv & s.fracMask
	w00 := (256 - fx) * (256 - fy)
	w10 := fx * (256 - fy)
	w01 := (256 - fx) * fy
	w11 := fx * fy

	t := s.tex.texels
	i00 := tap.offset + (y0*tap.dim+x0)*4
	i10 := tap.offset + (y0*tap.dim+x1)*4
	i01 := tap.offset + (y1*tap.dim+x0)*4
	i11 := tap.offset + (y1*tap.dim+x1)*4

	var c [4]uint32
	for i := range c {
		c[i] = (uint32(t[i00+uint32(i)])*w00 +
			uint32(t[i10+uint32(i)])*w10 +
			uint32(t[i01+uint32(i)])*w01 +
			uint32(t[i11+uint32(i)])*w11) >> 16
	}
	return c
}

// LevelOfDetail computes the mip level selector from screen-space texture
// coordinate derivatives: log2 of the longest pixel footprint axis in
// texels. The result is unclamped; NewSampler clamps to the mip range.
func (t *Texture) LevelOfDetail(dudx, dvdx, dudy, dvdy float32) float32 {
	nx := dudx*dudx + dvdx*dvdx
	ny := dudy*dudy + dvdy*dvdy
	n := nx
	if ny > n {
		n = ny
	}
	// log2(size * sqrt(n)) == log2(size^2 * n) / 2
	return float32(math.Log2(float64(n)*float64(t.size)*float64(t.size))) / 2
}
