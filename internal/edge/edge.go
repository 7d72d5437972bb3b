// Package edge implements per-triangle rasterization setup: integer edge
// functions, the top-left fill rule classification, and the fixed-point
// bounding box of covered pixel centers.
//
// For a clockwise triangle (y grows downward) each edge i from vertex i to
// vertex i+1 gets integer coefficients (A, B, C) such that
//
//	e_i(x, y) = A*x + B*y + C
//
// is positive strictly inside the triangle, zero exactly on the edge line,
// and negative outside. All inputs are fixed.Coord values, so two triangles
// sharing an edge compute bitwise-identical edge functions with opposite
// signs; combined with the top-left tie-break this partitions boundary
// pixels exactly (no gaps, no double coverage).
package edge

import "github.com/gogpu/rast/internal/fixed"

// Setup holds the integer rasterization state of one clockwise triangle.
type Setup struct {
	// Edge coefficients: e_i(x,y) = A[i]*x + B[i]*y + C[i] in fixed units.
	A [3]int64
	B [3]int64
	C [3]int64

	// Bias implements the top-left fill rule: 0 for top or left edges,
	// -1 (one fixed-point ULP) otherwise. A pixel is covered when
	// e_i + Bias[i] >= 0 for all three edges.
	Bias [3]int64

	// StepX and StepY advance an edge value by one whole pixel.
	StepX [3]int64
	StepY [3]int64

	// Area2 is twice the signed area in fixed^2 units; always > 0.
	Area2 int64

	// InvArea2 is 1/Area2, used for barycentric normalization.
	InvArea2 float32

	// Inclusive pixel bounding box of centers that may be covered.
	MinX, MinY, MaxX, MaxY int
}

// Orientation returns twice the signed area of the triangle in fixed^2
// units. Positive means clockwise winding (y-down screen coordinates),
// negative counter-clockwise, zero degenerate.
func Orientation(x0, y0, x1, y1, x2, y2 fixed.Coord) int64 {
	return int64(x1-x0)*int64(y2-y0) - int64(x2-x0)*int64(y1-y0)
}

// New computes the rasterization setup for a clockwise triangle.
// It reports ok=false for degenerate (zero area) or counter-clockwise
// input; callers reorder vertices before calling.
func New(x0, y0, x1, y1, x2, y2 fixed.Coord) (s Setup, ok bool) {
	xs := [3]fixed.Coord{x0, x1, x2}
	ys := [3]fixed.Coord{y0, y1, y2}

	for i := range 3 {
		j := (i + 1) % 3
		a := int64(ys[i] - ys[j])
		b := int64(xs[j] - xs[i])
		s.A[i] = a
		s.B[i] = b
		s.C[i] = -(a*int64(xs[i]) + b*int64(ys[i]))
		s.StepX[i] = a << fixed.FracBits
		s.StepY[i] = b << fixed.FracBits
		if isTopLeft(a, b) {
			s.Bias[i] = 0
		} else {
			s.Bias[i] = -1
		}
	}

	s.Area2 = s.eval(0, int64(x2), int64(y2))
	if s.Area2 <= 0 {
		return Setup{}, false
	}
	s.InvArea2 = 1 / float32(s.Area2)

	minX, maxX := minMax3(xs)
	minY, maxY := minMax3(ys)
	s.MinX = centerAtOrAfter(minX)
	s.MaxX = centerAtOrBefore(maxX)
	s.MinY = centerAtOrAfter(minY)
	s.MaxY = centerAtOrBefore(maxY)
	return s, true
}

// isTopLeft classifies an edge with coefficients a = -dy, b = dx.
// Left edges run upward on screen (dy < 0); top edges are exactly
// horizontal and run rightward (dy == 0, dx > 0).
func isTopLeft(a, b int64) bool {
	if a > 0 { // dy = -a < 0
		return true
	}
	return a == 0 && b > 0
}

func (s *Setup) eval(i int, x, y int64) int64 {
	return s.A[i]*x + s.B[i]*y + s.C[i]
}

// EvalAt returns the three edge values at the center of pixel (px, py).
func (s *Setup) EvalAt(px, py int) [3]int64 {
	x := int64(fixed.PixelCenter(px))
	y := int64(fixed.PixelCenter(py))
	var e [3]int64
	for i := range 3 {
		e[i] = s.eval(i, x, y)
	}
	return e
}

// Covered reports whether edge values e pass the top-left fill rule.
func (s *Setup) Covered(e [3]int64) bool {
	return e[0]+s.Bias[0] >= 0 && e[1]+s.Bias[1] >= 0 && e[2]+s.Bias[2] >= 0
}

// Barycentric converts edge values at a covered pixel into the three
// normalized weights of vertices 0, 1 and 2. Edge i is opposite vertex
// i+2, so the weight of vertex 0 comes from edge 1, and so on.
func (s *Setup) Barycentric(e [3]int64) (l0, l1, l2 float32) {
	l0 = float32(e[1]) * s.InvArea2
	l1 = float32(e[2]) * s.InvArea2
	l2 = float32(e[0]) * s.InvArea2
	return l0, l1, l2
}

// centerAtOrAfter returns the first pixel whose center is >= c.
func centerAtOrAfter(c fixed.Coord) int {
	return (int(c) - fixed.HalfPixel + fixed.One - 1) >> fixed.FracBits
}

// centerAtOrBefore returns the last pixel whose center is <= c.
func centerAtOrBefore(c fixed.Coord) int {
	return (int(c) - fixed.HalfPixel) >> fixed.FracBits
}

func minMax3(v [3]fixed.Coord) (lo, hi fixed.Coord) {
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
