package parallel

import "sync/atomic"

// DirtyRegion tracks which tiles were written by recent draw calls, using a
// lock-free atomic bitmap (one bit per tile, 64 tiles per word).
//
// Tile jobs mark their tile from worker goroutines without synchronization;
// presentation consumers read the bitmap after the draw barrier to composite
// only changed regions. All methods are safe for concurrent use.
type DirtyRegion struct {
	// words is the atomic bitmap; bit index = ty*tilesX + tx.
	words []atomic.Uint64

	// tilesX and tilesY are the grid dimensions in tiles.
	tilesX int
	tilesY int
}

// NewDirtyRegion creates a tracker for the given tile grid dimensions.
// All tiles start clean. Returns nil for invalid dimensions.
func NewDirtyRegion(tilesX, tilesY int) *DirtyRegion {
	if tilesX <= 0 || tilesY <= 0 {
		return nil
	}
	total := tilesX * tilesY
	return &DirtyRegion{
		words:  make([]atomic.Uint64, (total+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Mark marks tile (tx, ty) as dirty. Lock-free, O(1).
// Does nothing if coordinates are out of bounds.
func (d *DirtyRegion) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	bit := ty*d.tilesX + tx
	d.words[bit/64].Or(1 << (bit % 64))
}

// MarkAll marks every tile dirty.
func (d *DirtyRegion) MarkAll() {
	for i := range d.words {
		d.words[i].Store(^uint64(0))
	}
}

// IsDirty reports whether tile (tx, ty) is marked dirty.
func (d *DirtyRegion) IsDirty(tx, ty int) bool {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return false
	}
	bit := ty*d.tilesX + tx
	return d.words[bit/64].Load()&(1<<(bit%64)) != 0
}

// Clear resets all tiles to clean.
func (d *DirtyRegion) Clear() {
	for i := range d.words {
		d.words[i].Store(0)
	}
}

// ForEachDirty calls fn for every dirty tile in row-major order.
func (d *DirtyRegion) ForEachDirty(fn func(tx, ty int)) {
	for ty := range d.tilesY {
		for tx := range d.tilesX {
			if d.IsDirty(tx, ty) {
				fn(tx, ty)
			}
		}
	}
}
