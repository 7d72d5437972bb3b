// Package parallel provides the tile partitioning and scheduling
// infrastructure of the rasterizer.
//
// The framebuffer is divided into 64x64 pixel tiles. Each tile owns private
// color, depth and normal planes; tiles are disjoint and exhaustively cover
// the framebuffer, so no two tile jobs ever write the same pixel. That
// single invariant is what makes cross-thread writes race-free without any
// locking in the pixel path.
//
// A draw call bins its triangles per tile in submission order, dispatches
// one job per occupied tile onto the WorkerPool, and blocks at the
// end-of-draw barrier. Cross-tile ordering is unspecified; within a tile,
// triangles run strictly in submission order because a single job owns the
// whole tile for the draw call.
package parallel

import "math"

// Tile size constants, chosen for cache efficiency and work distribution.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64

	// TilePixels is the total number of pixels in a full tile.
	TilePixels = TileWidth * TileHeight
)

// ClearDepth is the depth value written by a depth clear. The depth
// comparator is less-than (nearer wins), so +Inf means "nothing here yet".
var ClearDepth = float32(math.Inf(1))

// Tile is one rectangular region of the framebuffer, processed as an
// independent unit of parallel work.
//
// Edge tiles have reduced Width/Height when the framebuffer is not evenly
// divisible by the tile size. A tile's planes are exclusively owned by the
// worker processing it for the duration of a draw call.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels (may be < TileWidth).
	Width int

	// Height is the actual height in pixels (may be < TileHeight).
	Height int

	// Color holds RGBA8 pixel data, Width*Height*4 bytes.
	Color []byte

	// Depth holds one float32 depth per pixel.
	Depth []float32

	// Normal holds one xyz normal per pixel, Width*Height*3 floats.
	Normal []float32
}

// Reset clears all planes for reuse: color and normals to zero, depth to
// the far clear value.
func (t *Tile) Reset() {
	clear(t.Color)
	clear(t.Normal)
	for i := range t.Depth {
		t.Depth[i] = ClearDepth
	}
}

// ClearColor fills the color plane with a single RGBA value.
func (t *Tile) ClearColor(rgba [4]byte) {
	stride := t.Width * 4
	row := t.Color[:stride]
	for x := 0; x < t.Width; x++ {
		copy(row[x*4:], rgba[:])
	}
	for y := 1; y < t.Height; y++ {
		copy(t.Color[y*stride:(y+1)*stride], row)
	}
}

// ClearDepth resets the depth plane to the far clear value.
func (t *Tile) ClearDepth() {
	for i := range t.Depth {
		t.Depth[i] = ClearDepth
	}
}

// ClearNormal zeroes the normal plane.
func (t *Tile) ClearNormal() {
	clear(t.Normal)
}

// Bounds returns the pixel bounds of this tile in framebuffer space as
// (x, y, width, height) with (x, y) the top-left corner.
func (t *Tile) Bounds() (x, y, w, h int) {
	return t.X * TileWidth, t.Y * TileHeight, t.Width, t.Height
}

// PixelIndex returns the per-pixel index into Depth (and, scaled, into
// Color and Normal) for tile-local coordinates. Returns -1 out of bounds.
func (t *Tile) PixelIndex(px, py int) int {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return -1
	}
	return py*t.Width + px
}

// Contains reports whether framebuffer pixel (cx, cy) lies in this tile.
func (t *Tile) Contains(cx, cy int) bool {
	tileX := t.X * TileWidth
	tileY := t.Y * TileHeight
	return cx >= tileX && cx < tileX+t.Width &&
		cy >= tileY && cy < tileY+t.Height
}

// Stride returns the color plane row stride in bytes.
func (t *Tile) Stride() int {
	return t.Width * 4
}
