package rast

import (
	"fmt"
	"image"

	"github.com/gogpu/rast/internal/parallel"
)

// The framebuffer accessors translate framebuffer coordinates into tile
// storage. They are safe to call concurrently once the mutating call
// (Draw, Clear, Resize) has returned; that return is the synchronization
// point.

// ColorAt returns the color plane value at (x, y). Out-of-range
// coordinates return the zero RGBA.
func (r *Renderer) ColorAt(x, y int) RGBA {
	tile, idx := r.locate(x, y)
	if tile == nil {
		return RGBA{}
	}
	c := tile.Color[idx*4 : idx*4+4]
	return RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// DepthAt returns the depth plane value at (x, y). Out-of-range
// coordinates return the far clear value (+Inf).
func (r *Renderer) DepthAt(x, y int) float32 {
	tile, idx := r.locate(x, y)
	if tile == nil {
		return parallel.ClearDepth
	}
	return tile.Depth[idx]
}

// NormalAt returns the normal plane value at (x, y). Out-of-range
// coordinates return the zero vector.
func (r *Renderer) NormalAt(x, y int) [3]float32 {
	tile, idx := r.locate(x, y)
	if tile == nil {
		return [3]float32{}
	}
	n := idx * 3
	return [3]float32{tile.Normal[n], tile.Normal[n+1], tile.Normal[n+2]}
}

// locate resolves a framebuffer pixel to its tile and tile-local index.
func (r *Renderer) locate(x, y int) (*parallel.Tile, int) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return nil, 0
	}
	tile := r.grid.TileAtPixel(x, y)
	if tile == nil {
		return nil, 0
	}
	tx, ty, _, _ := tile.Bounds()
	return tile, tile.PixelIndex(x-tx, y-ty)
}

// Composite copies the whole color plane into dst as tightly-or-loosely
// packed RGBA8 rows of the given stride (bytes per row).
func (r *Renderer) Composite(dst []byte, stride int) error {
	if stride < r.width*4 || len(dst) < stride*r.height {
		return fmt.Errorf("%w (need stride >= %d and %d bytes, got %d and %d)",
			ErrShortBuffer, r.width*4, stride*r.height, stride, len(dst))
	}
	r.grid.ForEach(func(tile *parallel.Tile) {
		compositeTile(tile, dst, stride)
	})
	return nil
}

// CompositeDirty copies only the tiles touched since the last
// CompositeDirty (or created dirty by Clear/Resize), then resets the
// dirty tracking. Presentation loops use it to skip unchanged tiles.
func (r *Renderer) CompositeDirty(dst []byte, stride int) (tiles int, err error) {
	if stride < r.width*4 || len(dst) < stride*r.height {
		return 0, fmt.Errorf("%w (need stride >= %d and %d bytes, got %d and %d)",
			ErrShortBuffer, r.width*4, stride*r.height, stride, len(dst))
	}
	r.dirty.ForEachDirty(func(tx, ty int) {
		compositeTile(r.grid.TileAt(tx, ty), dst, stride)
		tiles++
	})
	r.dirty.Clear()
	return tiles, nil
}

// Image returns the color plane as a new image, for encoding or display.
func (r *Renderer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.grid.ForEach(func(tile *parallel.Tile) {
		compositeTile(tile, img.Pix, img.Stride)
	})
	return img
}

// compositeTile copies one tile's color rows into a destination plane.
func compositeTile(tile *parallel.Tile, dst []byte, stride int) {
	x, y, w, h := tile.Bounds()
	for row := 0; row < h; row++ {
		src := tile.Color[row*w*4 : (row+1)*w*4]
		off := (y+row)*stride + x*4
		copy(dst[off:off+w*4], src)
	}
}
