package texture

import (
	"image"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Sampler is a CPU image with GPU-like bilinear filtering. It doubles as a
// scene.ImageTexture the rasterizer uploads on first use.
type Sampler struct {
	img  *image.RGBA
	wrap scene.Wrap
}

// NewSampler wraps img. The water normal map uses scene.Repeat.
func NewSampler(img *image.RGBA, wrap scene.Wrap) *Sampler {
	return &Sampler{img: img, wrap: wrap}
}

// Bounds returns the image size in texels.
func (s *Sampler) Bounds() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// RGBA returns the backing pixels.
func (s *Sampler) RGBA() *image.RGBA { return s.img }

// Wrap returns the addressing mode.
func (s *Sampler) Wrap() scene.Wrap { return s.wrap }

// Sample returns the bilinearly filtered texel at uv, components in [0, 1].
// uv (0, 0) is the first row of the image, matching GL upload order.
func (s *Sampler) Sample(uv math.Vec2) math.Vec4 {
	w, h := s.Bounds()
	if w == 0 || h == 0 {
		return math.Vec4{}
	}

	x := uv.X*float32(w) - 0.5
	y := uv.Y*float32(h) - 0.5
	x0 := floor(x)
	y0 := floor(y)
	fx := x - float32(x0)
	fy := y - float32(y0)

	c00 := s.texel(x0, y0)
	c10 := s.texel(x0+1, y0)
	c01 := s.texel(x0, y0+1)
	c11 := s.texel(x0+1, y0+1)

	var out math.Vec4
	for i := range out {
		top := math.Mix(c00[i], c10[i], fx)
		bottom := math.Mix(c01[i], c11[i], fx)
		out[i] = math.Mix(top, bottom, fy)
	}
	return out
}

func (s *Sampler) texel(x, y int) math.Vec4 {
	w, h := s.Bounds()
	x = s.address(x, w)
	y = s.address(y, h)
	o := s.img.PixOffset(x+s.img.Rect.Min.X, y+s.img.Rect.Min.Y)
	p := s.img.Pix[o : o+4 : o+4]
	return math.Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

func (s *Sampler) address(i, n int) int {
	if s.wrap == scene.Repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func floor(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}
