package parallel

import (
	"sync"
	"testing"
)

// =============================================================================
// Tile
// =============================================================================

func TestTile_Reset(t *testing.T) {
	tile := newTile(8, 8)
	tile.Color[0] = 200
	tile.Depth[5] = 0.5
	tile.Normal[10] = 1

	tile.Reset()

	if tile.Color[0] != 0 {
		t.Error("color plane not cleared")
	}
	if tile.Depth[5] != ClearDepth {
		t.Errorf("depth[5] = %v, want ClearDepth", tile.Depth[5])
	}
	if tile.Normal[10] != 0 {
		t.Error("normal plane not cleared")
	}
}

func TestTile_ClearColor(t *testing.T) {
	tile := newTile(5, 3)
	tile.ClearColor([4]byte{10, 20, 30, 40})

	for i := 0; i < 5*3; i++ {
		got := [4]byte{tile.Color[i*4], tile.Color[i*4+1], tile.Color[i*4+2], tile.Color[i*4+3]}
		if got != [4]byte{10, 20, 30, 40} {
			t.Fatalf("pixel %d = %v, want {10 20 30 40}", i, got)
		}
	}
}

func TestTile_PixelIndex(t *testing.T) {
	tile := newTile(8, 4)
	if idx := tile.PixelIndex(3, 2); idx != 2*8+3 {
		t.Errorf("PixelIndex(3,2) = %d, want %d", idx, 2*8+3)
	}
	for _, p := range [][2]int{{-1, 0}, {8, 0}, {0, -1}, {0, 4}} {
		if idx := tile.PixelIndex(p[0], p[1]); idx != -1 {
			t.Errorf("PixelIndex(%d,%d) = %d, want -1", p[0], p[1], idx)
		}
	}
}

func TestTile_Contains(t *testing.T) {
	tile := newTile(TileWidth, TileHeight)
	tile.X = 1
	tile.Y = 2

	if !tile.Contains(TileWidth, 2*TileHeight) {
		t.Error("top-left corner pixel not contained")
	}
	if !tile.Contains(2*TileWidth-1, 3*TileHeight-1) {
		t.Error("bottom-right corner pixel not contained")
	}
	if tile.Contains(TileWidth-1, 2*TileHeight) {
		t.Error("pixel left of tile contained")
	}
	if tile.Contains(2*TileWidth, 2*TileHeight) {
		t.Error("pixel right of tile contained")
	}
}

// =============================================================================
// TileGrid
// =============================================================================

func TestTileGrid_Coverage(t *testing.T) {
	// 150x100 with 64x64 tiles: 3x2 grid, edge tiles 22 and 36 pixels.
	g := NewTileGrid(150, 100)
	defer g.Close()

	if g.TilesX() != 3 || g.TilesY() != 2 {
		t.Fatalf("grid = %dx%d tiles, want 3x2", g.TilesX(), g.TilesY())
	}
	if tile := g.TileAt(2, 0); tile.Width != 150-2*TileWidth {
		t.Errorf("right edge tile width = %d, want %d", tile.Width, 150-2*TileWidth)
	}
	if tile := g.TileAt(0, 1); tile.Height != 100-TileHeight {
		t.Errorf("bottom edge tile height = %d, want %d", tile.Height, 100-TileHeight)
	}

	// Every pixel maps to exactly one tile that contains it.
	for _, p := range [][2]int{{0, 0}, {63, 63}, {64, 0}, {149, 99}, {64, 64}, {127, 99}} {
		tile := g.TileAtPixel(p[0], p[1])
		if tile == nil {
			t.Fatalf("pixel (%d,%d) has no tile", p[0], p[1])
		}
		if !tile.Contains(p[0], p[1]) {
			t.Errorf("tile (%d,%d) does not contain pixel (%d,%d)", tile.X, tile.Y, p[0], p[1])
		}
	}
	if g.TileAtPixel(150, 0) != nil || g.TileAtPixel(0, 100) != nil {
		t.Error("out-of-bounds pixel mapped to a tile")
	}
}

func TestTileGrid_TileRange(t *testing.T) {
	g := NewTileGrid(256, 256)
	defer g.Close()

	tx0, ty0, tx1, ty1, ok := g.TileRange(10, 10, 70, 130)
	if !ok {
		t.Fatal("TileRange reported miss for intersecting rectangle")
	}
	if tx0 != 0 || ty0 != 0 || tx1 != 1 || ty1 != 2 {
		t.Errorf("range = (%d,%d)-(%d,%d), want (0,0)-(1,2)", tx0, ty0, tx1, ty1)
	}

	// Clipped to framebuffer.
	_, _, tx1, ty1, ok = g.TileRange(-50, -50, 5000, 5000)
	if !ok || tx1 != g.TilesX()-1 || ty1 != g.TilesY()-1 {
		t.Errorf("clipped range end = (%d,%d), want (%d,%d)", tx1, ty1, g.TilesX()-1, g.TilesY()-1)
	}

	// Entirely outside.
	if _, _, _, _, ok := g.TileRange(300, 300, 400, 400); ok {
		t.Error("TileRange reported hit for rectangle outside framebuffer")
	}
}

func TestTileGrid_Resize(t *testing.T) {
	g := NewTileGrid(128, 128)
	defer g.Close()

	g.Resize(256, 64)
	if g.TilesX() != 4 || g.TilesY() != 1 {
		t.Errorf("after resize: %dx%d tiles, want 4x1", g.TilesX(), g.TilesY())
	}
	if g.Width() != 256 || g.Height() != 64 {
		t.Errorf("after resize: %dx%d px, want 256x64", g.Width(), g.Height())
	}

	// Resize to identical size is a no-op.
	before := g.TileAt(0, 0)
	g.Resize(256, 64)
	if g.TileAt(0, 0) != before {
		t.Error("no-op resize reallocated tiles")
	}
}

// =============================================================================
// TilePool
// =============================================================================

func TestTilePool_Reuse(t *testing.T) {
	p := NewTilePool()

	tile := p.Get(TileWidth, TileHeight)
	tile.Color[0] = 99
	tile.Depth[0] = 0.25
	p.Put(tile)

	got := p.Get(TileWidth, TileHeight)
	if got.Color[0] != 0 || got.Depth[0] != ClearDepth {
		t.Error("recycled tile not cleared")
	}
}

func TestTilePool_EdgeSizes(t *testing.T) {
	p := NewTilePool()

	tile := p.Get(22, 36)
	if tile.Width != 22 || tile.Height != 36 {
		t.Fatalf("tile = %dx%d, want 22x36", tile.Width, tile.Height)
	}
	if len(tile.Color) != 22*36*4 || len(tile.Depth) != 22*36 || len(tile.Normal) != 22*36*3 {
		t.Error("edge tile plane sizes wrong")
	}
	p.Put(tile)
}

func TestTilePool_Concurrent(t *testing.T) {
	p := NewTilePool()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tile := p.Get(TileWidth, TileHeight)
				tile.Color[0] = 1
				p.Put(tile)
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// DirtyRegion
// =============================================================================

func TestDirtyRegion_MarkAndClear(t *testing.T) {
	d := NewDirtyRegion(10, 10)

	d.Mark(3, 4)
	if !d.IsDirty(3, 4) {
		t.Error("tile (3,4) not dirty after Mark")
	}
	if d.IsDirty(4, 3) {
		t.Error("tile (4,3) dirty without Mark")
	}

	var visited [][2]int
	d.ForEachDirty(func(tx, ty int) { visited = append(visited, [2]int{tx, ty}) })
	if len(visited) != 1 || visited[0] != [2]int{3, 4} {
		t.Errorf("ForEachDirty visited %v, want [[3 4]]", visited)
	}

	d.Clear()
	if d.IsDirty(3, 4) {
		t.Error("tile still dirty after Clear")
	}
}

func TestDirtyRegion_ConcurrentMark(t *testing.T) {
	d := NewDirtyRegion(16, 16)
	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 16 {
				d.Mark(i, w*2)
				d.Mark(i, w*2+1)
			}
		}()
	}
	wg.Wait()

	for ty := range 16 {
		for tx := range 16 {
			if !d.IsDirty(tx, ty) {
				t.Fatalf("tile (%d,%d) not dirty after concurrent marking", tx, ty)
			}
		}
	}
}
