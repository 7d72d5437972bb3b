// Command rastdemo renders a spinning textured cube with the rast
// software rasterizer and presents it in an ebiten window.
//
// Configuration comes from an optional YAML file:
//
//	rastdemo -config demo.yaml
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/rast"
	"github.com/gogpu/rast/cmd/internal/scene"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		rast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("rastdemo: %v", err)
	}
	filter, err := cfg.filterMode()
	if err != nil {
		log.Fatalf("rastdemo: %v", err)
	}

	renderer, err := rast.NewRenderer(cfg.Width, cfg.Height, rast.WithWorkers(cfg.Workers))
	if err != nil {
		log.Fatalf("rastdemo: %v", err)
	}
	defer renderer.Close()

	tex, err := scene.CheckerTexture(256, 8)
	if err != nil {
		log.Fatalf("rastdemo: %v", err)
	}

	game := &demo{
		cfg:      cfg,
		renderer: renderer,
		frame:    make([]byte, cfg.Width*cfg.Height*4),
		last:     time.Now(),
		state: rast.DrawState{
			DepthTest:  true,
			DepthWrite: true,
			Texture:    tex,
			Filter:     filter,
		},
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("rast demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("rastdemo: %v", err)
	}
}

// demo implements ebiten.Game: Update advances the rotation, Draw
// rasterizes the cube on the CPU and blits the framebuffer.
type demo struct {
	cfg      Config
	renderer *rast.Renderer
	state    rast.DrawState
	frame    []byte

	angle float64
	last  time.Time
}

func (d *demo) Update() error {
	now := time.Now()
	d.angle += d.cfg.Spin * now.Sub(d.last).Seconds()
	d.last = now
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	if err := d.renderer.Clear(rast.RGBA{R: 18, G: 18, B: 26, A: 255}); err != nil {
		log.Printf("rastdemo: clear: %v", err)
		return
	}
	verts, indices := scene.CubeVertices(d.cfg.Width, d.cfg.Height, d.angle)
	if _, err := d.renderer.Draw(verts, indices, d.state); err != nil {
		log.Printf("rastdemo: draw: %v", err)
		return
	}
	if err := d.renderer.Composite(d.frame, d.cfg.Width*4); err != nil {
		log.Printf("rastdemo: composite: %v", err)
		return
	}
	screen.WritePixels(d.frame)
}

func (d *demo) Layout(int, int) (int, int) {
	return d.cfg.Width, d.cfg.Height
}
