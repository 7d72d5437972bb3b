// Command rastbench measures rasterizer throughput offline: it renders a
// rotating textured cube plus a translucent triangle soup for a fixed
// number of frames and reports frame timing, optionally writing the last
// frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast"
	"github.com/gogpu/rast/cmd/internal/scene"
	"github.com/gogpu/rast/texture"
)

func main() {
	var (
		width     = flag.Int("width", 1280, "framebuffer width")
		height    = flag.Int("height", 720, "framebuffer height")
		frames    = flag.Int("frames", 300, "frames to render")
		workers   = flag.Int("workers", runtime.GOMAXPROCS(0), "rasterization workers")
		soup      = flag.Int("soup", 200, "extra translucent triangles per frame")
		outPath   = flag.String("out", "", "write the final frame to this PNG file")
		trilinear = flag.Bool("trilinear", true, "use trilinear filtering (bilinear otherwise)")
	)
	flag.Parse()

	renderer, err := rast.NewRenderer(*width, *height, rast.WithWorkers(*workers))
	if err != nil {
		log.Fatalf("rastbench: %v", err)
	}
	defer renderer.Close()

	tex, err := scene.CheckerTexture(512, 16)
	if err != nil {
		log.Fatalf("rastbench: %v", err)
	}
	filter := texture.FilterBilinear
	if *trilinear {
		filter = texture.FilterTrilinear
	}
	cubeState := rast.DrawState{
		DepthTest:  true,
		DepthWrite: true,
		Texture:    tex,
		Filter:     filter,
	}
	soupState := rast.DrawState{
		DepthTest: true,
		Blend:     rast.BlendAlpha,
	}

	bar := progressbar.Default(int64(*frames), "rendering")
	var totalTris int
	start := time.Now()
	for frame := 0; frame < *frames; frame++ {
		angle := float64(frame) * 0.02
		if err := renderer.Clear(rast.RGBA{R: 14, G: 14, B: 20, A: 255}); err != nil {
			log.Fatalf("rastbench: clear: %v", err)
		}

		verts, indices := scene.CubeVertices(*width, *height, angle)
		stats, err := renderer.Draw(verts, indices, cubeState)
		if err != nil {
			log.Fatalf("rastbench: draw: %v", err)
		}
		totalTris += stats.Triangles

		verts, indices = soupVertices(*width, *height, *soup, frame)
		stats, err = renderer.Draw(verts, indices, soupState)
		if err != nil {
			log.Fatalf("rastbench: draw: %v", err)
		}
		totalTris += stats.Triangles

		_ = bar.Add(1)
	}
	elapsed := time.Since(start)

	perFrame := elapsed / time.Duration(*frames)
	fmt.Printf("%d frames at %dx%d with %d workers\n", *frames, *width, *height, renderer.Workers())
	fmt.Printf("  %v per frame (%.1f fps)\n", perFrame.Round(time.Microsecond), float64(time.Second)/float64(perFrame))
	fmt.Printf("  %.2fM triangles/s\n", float64(totalTris)/elapsed.Seconds()/1e6)

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("rastbench: %v", err)
		}
		defer f.Close()
		if err := png.Encode(f, renderer.Image()); err != nil {
			log.Fatalf("rastbench: encode: %v", err)
		}
		fmt.Printf("  final frame written to %s\n", *outPath)
	}
}

// soupVertices builds a deterministic field of translucent triangles
// spread across the framebuffer; it stresses binning and blending rather
// than texture sampling.
func soupVertices(width, height, count, frame int) ([]rast.Vertex, []uint32) {
	verts := make([]rast.Vertex, 0, count*3)
	indices := make([]uint32, 0, count*3)
	for i := 0; i < count; i++ {
		seed := float64(i*2654435761 % 1000)
		cx := math.Mod(seed*1.7+float64(frame), float64(width))
		cy := math.Mod(seed*2.3, float64(height))
		r := 12 + math.Mod(seed, 40.0)
		phase := seed * 0.01

		base := uint32(len(verts))
		for k := 0; k < 3; k++ {
			a := phase + float64(k)*2*math.Pi/3
			verts = append(verts, rast.Vertex{
				Position: f32.Vec4{
					float32(cx + r*math.Cos(a)),
					float32(cy + r*math.Sin(a)),
					float32(0.5 + 0.4*math.Sin(seed)),
					1,
				},
				Color: f32.Vec4{
					float32(0.3 + 0.7*math.Abs(math.Sin(seed*0.7))),
					float32(0.3 + 0.7*math.Abs(math.Cos(seed*0.3))),
					0.8,
					0.4,
				},
			})
		}
		indices = append(indices, base, base+1, base+2)
	}
	return verts, indices
}
