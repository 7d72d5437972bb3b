package parallel

import "sync"

// TilePool provides reuse of Tile instances via sync.Pool.
//
// Tile planes are allocated once per size and recycled across framebuffer
// resizes, not reallocated per draw call. Full-size 64x64 tiles are the
// common case and get a dedicated pool; edge tiles share size-keyed pools.
//
// Thread safety: TilePool is safe for concurrent use.
type TilePool struct {
	// pools holds separate sync.Pool instances per tile size.
	// Key format: (width << 16) | height.
	pools sync.Map

	// fullTilePool is the dedicated pool for full-size tiles.
	fullTilePool sync.Pool
}

// NewTilePool creates a new tile pool.
func NewTilePool() *TilePool {
	p := &TilePool{}
	p.fullTilePool.New = func() any {
		return newTile(TileWidth, TileHeight)
	}
	return p
}

func newTile(width, height int) *Tile {
	return &Tile{
		Width:  width,
		Height: height,
		Color:  make([]byte, width*height*4),
		Depth:  make([]float32, width*height),
		Normal: make([]float32, width*height*3),
	}
}

// Get retrieves a tile of the given dimensions, with all planes cleared.
// Returns nil for non-positive dimensions.
func (p *TilePool) Get(width, height int) *Tile {
	if width <= 0 || height <= 0 {
		return nil
	}

	if width == TileWidth && height == TileHeight {
		tile := p.fullTilePool.Get().(*Tile)
		tile.Reset()
		tile.X = 0
		tile.Y = 0
		return tile
	}

	key := poolKey(width, height)
	pool := p.getOrCreatePool(key, width, height)
	tile := pool.Get().(*Tile)
	tile.Reset()
	tile.X = 0
	tile.Y = 0
	return tile
}

// Put returns a tile to the pool for reuse. Nil is a no-op.
func (p *TilePool) Put(tile *Tile) {
	if tile == nil {
		return
	}
	if tile.Width == TileWidth && tile.Height == TileHeight {
		p.fullTilePool.Put(tile)
		return
	}
	key := poolKey(tile.Width, tile.Height)
	pool := p.getOrCreatePool(key, tile.Width, tile.Height)
	pool.Put(tile)
}

func poolKey(width, height int) uint64 {
	return uint64(width)<<16 | uint64(height)
}

func (p *TilePool) getOrCreatePool(key uint64, width, height int) *sync.Pool {
	if v, ok := p.pools.Load(key); ok {
		return v.(*sync.Pool)
	}
	pool := &sync.Pool{
		New: func() any {
			return newTile(width, height)
		},
	}
	actual, _ := p.pools.LoadOrStore(key, pool)
	return actual.(*sync.Pool)
}
