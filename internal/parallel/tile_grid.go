package parallel

// TileGrid manages the grid of tiles backing one framebuffer.
//
// Tiles are stored in a flat slice in row-major order, accessed via
// index = ty*tilesX + tx. The grid together with Tile.PixelIndex defines
// the deterministic pixel-to-(tile, offset) address translation used by the
// framebuffer accessors: pixels are read in place, never copied out of
// tile storage.
//
// Thread safety: TileGrid itself is NOT thread-safe; concurrent draw-time
// access is safe because every tile job touches exactly one tile.
type TileGrid struct {
	// tiles is a flat slice of all tiles (row-major order).
	tiles []*Tile

	// tilesX and tilesY are the grid dimensions in tiles.
	tilesX int
	tilesY int

	// width and height are the framebuffer dimensions in pixels.
	width  int
	height int

	// pool recycles tile memory across resizes.
	pool *TilePool
}

// NewTileGrid creates a tile grid covering the given framebuffer size.
// Edge tiles have reduced dimensions if the size is not evenly divisible
// by the tile size.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{pool: NewTilePool()}
	if width <= 0 || height <= 0 {
		return g
	}
	g.width = width
	g.height = height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)
	g.allocateTiles()
	return g
}

// allocateTiles creates all tiles for the grid.
func (g *TileGrid) allocateTiles() {
	for ty := range g.tilesY {
		for tx := range g.tilesX {
			tileW := TileWidth
			tileH := TileHeight
			if (tx+1)*TileWidth > g.width {
				tileW = g.width - tx*TileWidth
			}
			if (ty+1)*TileHeight > g.height {
				tileH = g.height - ty*TileHeight
			}

			tile := g.pool.Get(tileW, tileH)
			tile.X = tx
			tile.Y = ty
			g.tiles[ty*g.tilesX+tx] = tile
		}
	}
}

// Resize changes the grid dimensions, recycling tiles through the pool.
// If dimensions are unchanged, this is a no-op.
func (g *TileGrid) Resize(width, height int) {
	if g.width == width && g.height == height {
		return
	}
	g.Close()
	if width <= 0 || height <= 0 {
		g.tiles = nil
		g.tilesX = 0
		g.tilesY = 0
		g.width = 0
		g.height = 0
		return
	}
	g.width = width
	g.height = height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	g.tilesY = (height + TileHeight - 1) / TileHeight
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)
	g.allocateTiles()
}

// TileAt returns the tile at tile coordinates (tx, ty), or nil if out of
// bounds.
func (g *TileGrid) TileAt(tx, ty int) *Tile {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return nil
	}
	return g.tiles[ty*g.tilesX+tx]
}

// TileAtPixel returns the tile containing framebuffer pixel (px, py), or
// nil if out of bounds.
func (g *TileGrid) TileAtPixel(px, py int) *Tile {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return nil
	}
	return g.tiles[(py/TileHeight)*g.tilesX+px/TileWidth]
}

// TileRange returns the tile index range [tx0, tx1] x [ty0, ty1]
// (inclusive) intersecting the pixel rectangle [x0, x1] x [y0, y1]
// (inclusive), clipped to the framebuffer. ok is false when the rectangle
// misses the framebuffer entirely.
func (g *TileGrid) TileRange(x0, y0, x1, y1 int) (tx0, ty0, tx1, ty1 int, ok bool) {
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, g.width-1)
	y1 = min(y1, g.height-1)
	if x0 > x1 || y0 > y1 {
		return 0, 0, 0, 0, false
	}
	return x0 / TileWidth, y0 / TileHeight, x1 / TileWidth, y1 / TileHeight, true
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Width returns the framebuffer width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the framebuffer height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// AllTiles returns all tiles in the grid. The returned slice must not be
// modified.
func (g *TileGrid) AllTiles() []*Tile {
	return g.tiles
}

// ForEach calls fn for each tile in row-major order.
func (g *TileGrid) ForEach(fn func(tile *Tile)) {
	for _, tile := range g.tiles {
		if tile != nil {
			fn(tile)
		}
	}
}

// Close releases all tiles back to the pool. The grid may be resized and
// reused afterwards.
func (g *TileGrid) Close() {
	for i, tile := range g.tiles {
		if tile != nil {
			g.pool.Put(tile)
			g.tiles[i] = nil
		}
	}
}
