package rast

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/rast/internal/parallel"
)

// Option configures a Renderer during creation.
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers int
}

// WithWorkers sets the number of rasterization workers. Values below 1
// fall back to the default (GOMAXPROCS). Output does not depend on the
// worker count, only throughput does.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// Renderer rasterizes triangles into a tiled framebuffer with color,
// depth and normal planes.
//
// Draw, Clear, ClearDepth and Resize mutate the framebuffer and must not
// overlap; overlapping calls fail with ErrResizeBusy. The read accessors
// (ColorAt, Composite, Image and friends) are safe once the mutating call
// has returned.
type Renderer struct {
	width  int
	height int

	grid  *parallel.TileGrid
	pool  *parallel.WorkerPool
	dirty *parallel.DirtyRegion

	// busy serializes mutating operations; a failed CAS means a draw,
	// clear or resize is in flight.
	busy   atomic.Bool
	closed atomic.Bool
}

// NewRenderer creates a renderer with a width x height framebuffer.
// The depth plane starts cleared to the far value; the color and normal
// planes start zeroed.
func NewRenderer(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrInvalidSize, width, height)
	}

	options := rendererOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	grid := parallel.NewTileGrid(width, height)
	r := &Renderer{
		width:  width,
		height: height,
		grid:   grid,
		pool:   parallel.NewWorkerPool(options.workers),
		dirty:  parallel.NewDirtyRegion(grid.TilesX(), grid.TilesY()),
	}
	Logger().Info("rast: renderer created",
		"width", width, "height", height,
		"tiles", grid.TileCount(), "workers", r.pool.Workers())
	return r, nil
}

// Width returns the framebuffer width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the framebuffer height in pixels.
func (r *Renderer) Height() int { return r.height }

// Workers returns the number of rasterization workers.
func (r *Renderer) Workers() int { return r.pool.Workers() }

// acquire claims the renderer for one mutating operation.
func (r *Renderer) acquire() error {
	if r.closed.Load() {
		return ErrRendererClosed
	}
	if !r.busy.CompareAndSwap(false, true) {
		return ErrResizeBusy
	}
	return nil
}

// Clear fills the color plane with c, zeroes the normal plane and resets
// the depth plane, one parallel job per tile.
func (r *Renderer) Clear(c RGBA) error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.busy.Store(false)

	rgba := [4]byte{c.R, c.G, c.B, c.A}
	jobs := make([]parallel.Job, 0, r.grid.TileCount())
	r.grid.ForEach(func(tile *parallel.Tile) {
		jobs = append(jobs, func() error {
			tile.ClearColor(rgba)
			tile.ClearNormal()
			tile.ClearDepth()
			return nil
		})
	})
	errs := r.pool.ExecuteAll(jobs)
	r.dirty.MarkAll()
	return joinErrors(errs)
}

// ClearDepth resets only the depth plane to the far clear value.
func (r *Renderer) ClearDepth() error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.busy.Store(false)

	jobs := make([]parallel.Job, 0, r.grid.TileCount())
	r.grid.ForEach(func(tile *parallel.Tile) {
		jobs = append(jobs, func() error {
			tile.ClearDepth()
			return nil
		})
	})
	return joinErrors(r.pool.ExecuteAll(jobs))
}

// Resize reallocates the framebuffer for the new dimensions, recycling
// tile storage through the tile pool. All planes come back cleared.
// Resize fails with ErrResizeBusy if a draw or clear is in flight.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrInvalidSize, width, height)
	}
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.busy.Store(false)

	r.grid.Resize(width, height)
	r.width = width
	r.height = height
	r.dirty = parallel.NewDirtyRegion(r.grid.TilesX(), r.grid.TilesY())
	r.dirty.MarkAll()
	Logger().Info("rast: renderer resized", "width", width, "height", height)
	return nil
}

// Close releases the worker pool and tile storage. The renderer must not
// be used afterwards.
func (r *Renderer) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.pool.Close()
	r.grid.Close()
}

// joinErrors collapses the per-job error slots into one error, dropping
// nil slots.
func joinErrors(errs []error) error {
	var first error
	n := 0
	for _, err := range errs {
		if err != nil {
			if first == nil {
				first = err
			}
			n++
		}
	}
	if first == nil {
		return nil
	}
	if n == 1 {
		return first
	}
	return fmt.Errorf("%w (and %d more tile failures)", first, n-1)
}
