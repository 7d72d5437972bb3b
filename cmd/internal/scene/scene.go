// Package scene provides the shared demo geometry: a spinning cube and
// a procedural checkerboard texture.
package scene

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/rast"
	"github.com/gogpu/rast/texture"
)

// cubeFace describes one face of the unit cube: four corner positions
// and a tint. Texture coordinates are the same for every face.
type cubeFace struct {
	corners [4][3]float32
	tint    f32.Vec4
}

var cubeFaces = []cubeFace{
	{[4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}}, f32.Vec4{1, 0.6, 0.6, 1}},
	{[4][3]float32{{1, -1, 1}, {-1, -1, 1}, {-1, 1, 1}, {1, 1, 1}}, f32.Vec4{0.6, 1, 0.6, 1}},
	{[4][3]float32{{-1, -1, 1}, {-1, -1, -1}, {-1, 1, -1}, {-1, 1, 1}}, f32.Vec4{0.6, 0.6, 1, 1}},
	{[4][3]float32{{1, -1, -1}, {1, -1, 1}, {1, 1, 1}, {1, 1, -1}}, f32.Vec4{1, 1, 0.6, 1}},
	{[4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, -1, -1}, {-1, -1, -1}}, f32.Vec4{1, 0.6, 1, 1}},
	{[4][3]float32{{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1}}, f32.Vec4{0.6, 1, 1, 1}},
}

var faceUVs = [4]f32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// CubeVertices projects the spinning cube into screen space for one
// frame. angle drives rotation about Y with a fixed tilt about X.
func CubeVertices(width, height int, angle float64) ([]rast.Vertex, []uint32) {
	sinY, cosY := math.Sincos(angle)
	sinX, cosX := math.Sincos(0.45)

	cx := float64(width) / 2
	cy := float64(height) / 2
	focal := float64(height) * 0.9
	const camDist = 4.5

	verts := make([]rast.Vertex, 0, len(cubeFaces)*4)
	indices := make([]uint32, 0, len(cubeFaces)*6)
	for _, face := range cubeFaces {
		base := uint32(len(verts))
		for i, p := range face.corners {
			x := float64(p[0])*cosY + float64(p[2])*sinY
			z := -float64(p[0])*sinY + float64(p[2])*cosY
			y := float64(p[1])*cosX - z*sinX
			z = float64(p[1])*sinX + z*cosX + camDist

			invZ := 1 / z
			// The rotated face normal; the cube is axis-aligned in
			// model space so corner positions double as normals.
			n := f32.Vec3{float32(x / 1.7320508), float32(y / 1.7320508), float32((z - camDist) / 1.7320508)}

			verts = append(verts, rast.Vertex{
				Position: f32.Vec4{
					float32(cx + x*focal*invZ),
					float32(cy + y*focal*invZ),
					float32(z),
					float32(invZ),
				},
				Color:  face.tint,
				UV:     faceUVs[i],
				Normal: n,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, indices
}

// CheckerTexture generates the demo's procedural checkerboard with a
// full mip chain.
func CheckerTexture(size, cells int) (*texture.Texture, error) {
	level0 := make([]byte, size*size*4)
	cell := size / cells
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			if (x/cell+y/cell)%2 == 0 {
				level0[i], level0[i+1], level0[i+2] = 235, 235, 235
			} else {
				level0[i], level0[i+1], level0[i+2] = 40, 40, 48
			}
			level0[i+3] = 255
		}
	}
	return texture.New(texture.BuildMipChain(level0, size), size)
}
