package texture

import (
	"image"
	"image/color"

	perlin "github.com/aquilax/go-perlin"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// Perlin parameters for the water height field.
const (
	noiseAlpha  = 2
	noiseBeta   = 2
	noiseOctave = 3
	noisePeriod = 8.0 // noise cells across one tile
	noiseRelief = 6.0 // height to slope gain
)

// ProceduralNormalMap builds a size×size tileable tangent-space normal map
// from a Perlin height field. Normals are encoded as n*0.5+0.5 with Z in the
// blue channel.
func ProceduralNormalMap(size int, seed int64) *image.RGBA {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)

	heights := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			heights[y*size+x] = tileableHeight(p, x, y, size)
		}
	}
	at := func(x, y int) float64 {
		x = (x%size + size) % size
		y = (y%size + size) % size
		return heights[y*size+x]
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scale := noiseRelief * float64(size) / noisePeriod
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (at(x+1, y) - at(x-1, y)) * 0.5 * scale
			dy := (at(x, y+1) - at(x, y-1)) * 0.5 * scale
			n := math.Vec3{float32(-dx), float32(-dy), 1}.Normalize()
			img.SetRGBA(x, y, encodeNormal(n))
		}
	}
	return img
}

// tileableHeight blends four shifted noise samples so the field wraps at
// the tile edge.
func tileableHeight(p *perlin.Perlin, x, y, size int) float64 {
	s := float64(size)
	u := float64(x) / s
	v := float64(y) / s
	nx := u * noisePeriod
	ny := v * noisePeriod

	a := p.Noise2D(nx, ny)
	b := p.Noise2D(nx-noisePeriod, ny)
	c := p.Noise2D(nx, ny-noisePeriod)
	d := p.Noise2D(nx-noisePeriod, ny-noisePeriod)

	return a*(1-u)*(1-v) + b*u*(1-v) + c*(1-u)*v + d*u*v
}

func encodeNormal(n math.Vec3) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(math.Clamp(v*0.5+0.5, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: ch(n.X), G: ch(n.Y), B: ch(n.Z), A: 255}
}

// FlatNormalMap is a 1×1 map of the unperturbed normal (0, 0, 1).
func FlatNormalMap() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, encodeNormal(math.Vec3{0, 0, 1}))
	return img
}
