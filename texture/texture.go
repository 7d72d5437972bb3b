// Package texture provides immutable mip-chain textures and the branchless
// sampler used by the rasterizer core.
//
// A Texture is an ordered sequence of square, power-of-two RGBA8 mip levels:
// level 0 is full resolution, each following level halves the dimension,
// down to 1x1. The core treats textures as read-only and shares them across
// all worker threads without locking; the mip chain is supplied fully built
// by the caller (BuildMipChain is a loader-side convenience, never invoked
// from the draw path).
package texture

import (
	"errors"
	"fmt"
	"image"
	"math/bits"
)

// Sentinel validation errors.
var (
	// ErrNotPowerOfTwo reports a level-0 dimension that is not a power
	// of two (or not positive). Power-of-two sizes let the sampler wrap
	// coordinates with a mask instead of a modulo.
	ErrNotPowerOfTwo = errors.New("texture: size must be a positive power of two")

	// ErrIncompleteMipChain reports a mip chain that does not reach 1x1.
	ErrIncompleteMipChain = errors.New("texture: mip chain must cover every level down to 1x1")

	// ErrLevelSize reports a level whose pixel data length does not match
	// its dimensions.
	ErrLevelSize = errors.New("texture: mip level has wrong data size")

	// ErrNotSquare reports non-square source images.
	ErrNotSquare = errors.New("texture: source image must be square")
)

// Texture is an immutable mip-mapped RGBA8 texture.
type Texture struct {
	// texels holds all mip levels concatenated, level 0 first.
	texels []byte

	// offsets[i] is the byte offset of level i inside texels.
	offsets []int

	// size is the level-0 dimension in texels.
	size int
}

// New builds a texture from a fully-populated mip chain. levels[0] must be
// size*size RGBA8 texels, levels[i] must halve the dimension of its
// predecessor, and the chain must end at 1x1.
func New(levels [][]byte, size int) (*Texture, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrNotPowerOfTwo, size)
	}
	want := bits.Len(uint(size)) // log2(size) + 1
	if len(levels) != want {
		return nil, fmt.Errorf("%w (size %d needs %d levels, got %d)",
			ErrIncompleteMipChain, size, want, len(levels))
	}

	total := 0
	dim := size
	for i, level := range levels {
		if len(level) != dim*dim*4 {
			return nil, fmt.Errorf("%w (level %d: got %d bytes, want %d)",
				ErrLevelSize, i, len(level), dim*dim*4)
		}
		total += dim * dim * 4
		dim >>= 1
	}

	t := &Texture{
		texels:  make([]byte, 0, total),
		offsets: make([]int, len(levels)),
		size:    size,
	}
	for i, level := range levels {
		t.offsets[i] = len(t.texels)
		t.texels = append(t.texels, level...)
	}
	return t, nil
}

// FromImage builds a texture from a square, power-of-two image, generating
// the mip chain with BuildMipChain.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrNotSquare, b.Dx(), b.Dy())
	}
	size := b.Dx()
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrNotPowerOfTwo, size)
	}

	level0 := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, bb, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*size + x) * 4
			level0[i] = byte(r >> 8)
			level0[i+1] = byte(g >> 8)
			level0[i+2] = byte(bb >> 8)
			level0[i+3] = byte(a >> 8)
		}
	}
	return New(BuildMipChain(level0, size), size)
}

// Levels returns the number of mip levels.
func (t *Texture) Levels() int {
	return len(t.offsets)
}

// Size returns the level-0 dimension in texels.
func (t *Texture) Size() int {
	return t.size
}

// LevelSize returns the dimension of mip level i.
func (t *Texture) LevelSize(i int) int {
	return t.size >> i
}

// Texel returns the RGBA8 texel at (x, y) of mip level i, unclamped and
// unwrapped; intended for tests and tooling, not the sampling hot path.
func (t *Texture) Texel(level, x, y int) [4]byte {
	dim := t.LevelSize(level)
	i := t.offsets[level] + (y*dim+x)*4
	return [4]byte{t.texels[i], t.texels[i+1], t.texels[i+2], t.texels[i+3]}
}

// BuildMipChain generates a full mip chain from level-0 RGBA8 data by 2x2
// box filtering with round-to-nearest ((sum+2)/4). size must be a positive
// power of two; the returned slice includes level 0 (aliasing the input).
func BuildMipChain(level0 []byte, size int) [][]byte {
	levels := [][]byte{level0}
	src := level0
	srcDim := size
	for srcDim > 1 {
		dstDim := srcDim / 2
		dst := make([]byte, dstDim*dstDim*4)
		for y := 0; y < dstDim; y++ {
			for x := 0; x < dstDim; x++ {
				for c := 0; c < 4; c++ {
					sum := uint32(src[((2*y)*srcDim+2*x)*4+c]) +
						uint32(src[((2*y)*srcDim+2*x+1)*4+c]) +
						uint32(src[((2*y+1)*srcDim+2*x)*4+c]) +
						uint32(src[((2*y+1)*srcDim+2*x+1)*4+c])
					dst[(y*dstDim+x)*4+c] = byte((sum + 2) / 4)
				}
			}
		}
		levels = append(levels, dst)
		src = dst
		srcDim = dstDim
	}
	return levels
}
