// Package fixed provides the fixed-point coordinate representation used by
// the rasterizer core.
//
// Screen-space vertex positions arrive as float32 and are converted exactly
// once per draw call into signed fixed-point integers with FracBits
// fractional bits. Every later coverage decision (edge functions, bounding
// boxes, the top-left fill rule) is pure integer arithmetic on these values.
// Converting once and rounding deterministically is what makes shared
// triangle edges watertight: two triangles referencing the same vertex always
// see the same fixed-point coordinate, so their edge functions agree bit for
// bit.
//
// Rounding rule: round to nearest, ties away from zero. This is the single
// documented conversion used everywhere; no other float-to-fixed path exists
// in the module.
package fixed

import "math"

const (
	// FracBits is the number of sub-pixel bits. 8 bits gives 1/256-pixel
	// precision, matching common hardware rasterizers.
	FracBits = 8

	// One is one pixel in fixed-point units.
	One = 1 << FracBits

	// HalfPixel is the offset from a pixel's integer corner to its center.
	HalfPixel = One / 2

	// MaxCoord is the largest pixel-space magnitude accepted by FromFloat.
	// Coordinates beyond this range would risk overflowing the 64-bit edge
	// function accumulators, so they are rejected instead of wrapped.
	MaxCoord = 1 << 15
)

// Coord is a signed fixed-point coordinate with FracBits fractional bits.
type Coord int32

// FromFloat converts a float32 pixel coordinate to fixed point.
// It reports ok=false for NaN, infinities, and values outside
// [-MaxCoord, MaxCoord]; callers treat such geometry as invalid.
func FromFloat(v float32) (c Coord, ok bool) {
	f := float64(v)
	if math.IsNaN(f) || f < -MaxCoord || f > MaxCoord {
		return 0, false
	}
	// Round half away from zero.
	scaled := f * One
	if scaled >= 0 {
		return Coord(scaled + 0.5), true
	}
	return Coord(scaled - 0.5), true
}

// FromInt converts a whole pixel coordinate to fixed point.
func FromInt(v int) Coord {
	return Coord(v << FracBits)
}

// Floor returns the integer pixel at or below c.
func (c Coord) Floor() int {
	return int(c >> FracBits)
}

// Ceil returns the integer pixel at or above c.
func (c Coord) Ceil() int {
	return int((c + One - 1) >> FracBits)
}

// Float converts c back to float32 pixels.
func (c Coord) Float() float32 {
	return float32(c) / One
}

// PixelCenter returns the fixed-point coordinate of the center of pixel px.
func PixelCenter(px int) Coord {
	return Coord(px<<FracBits) + HalfPixel
}
