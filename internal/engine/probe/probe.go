// Package probe evaluates the sky and water shading models on the CPU and
// produces a still image of the scene, with no GPU involved.
package probe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/engine/mirror"
	"github.com/Faultbox/tidemirror/internal/engine/picking"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/sky"
	"github.com/Faultbox/tidemirror/internal/engine/texture"
	"github.com/Faultbox/tidemirror/internal/engine/water"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// ErrSize is returned for empty output or reflection sizes.
var ErrSize = errors.New("invalid image size")

// Scene is everything a probe render needs.
type Scene struct {
	Camera camera.Pose
	Sky    sky.Atmosphere
	Plane  math.Plane

	// Water holds the surface uniforms. Eye, TextureMatrix and FlatFill
	// are derived by Render.
	Water    water.Uniforms
	Normals  water.Sampler
	ClipBias float32

	ReflectionWidth  int
	ReflectionHeight int
}

// Result is a rendered probe.
type Result struct {
	Image *image.RGBA

	// Reflection is the mirror image the water sampled, nil when the
	// camera was below the surface.
	Reflection  *image.RGBA
	Mirror      mirror.Camera
	WaterPixels int
}

// Render draws s from its camera into a width×height image. Pixels whose
// ray meets the water plane get the water shading blended over the sky by
// the water alpha; the rest show the sky.
func Render(s Scene, width, height int) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, fmt.Errorf("%w: output %dx%d", ErrSize, width, height)
	}
	if s.ReflectionWidth <= 0 || s.ReflectionHeight <= 0 {
		return Result{}, fmt.Errorf("%w: reflection %dx%d", ErrSize, s.ReflectionWidth, s.ReflectionHeight)
	}

	cam, err := mirror.Derive(s.Camera, s.Plane, s.ClipBias)
	if err != nil {
		return Result{}, err
	}
	res := Result{Mirror: cam}

	u := s.Water
	u.Eye = cam.Eye
	var reflection water.Sampler
	if cam.Visible {
		res.Reflection = Reflection(cam, s.Sky, s.ReflectionWidth, s.ReflectionHeight)
		reflection = texture.NewSampler(res.Reflection, scene.ClampToEdge)
		u.TextureMatrix = cam.TextureMatrix
	} else {
		u.FlatFill = true
	}

	invViewProj := s.Camera.ProjectionMatrix().Mul(s.Camera.ViewMatrix()).Inverse()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	counts := make([]int, height)

	forRows(height, func(py int) {
		for px := 0; px < width; px++ {
			ray := picking.ScreenToRay(float32(px)+0.5, float32(py)+0.5, float32(width), float32(height), invViewProj, s.Camera.Position)
			c := s.Sky.Color(ray.Direction)
			if hit, ok := ray.IntersectPlane(s.Plane); ok {
				w := water.Shade(u, s.Normals, reflection, water.Fragment{WorldPosition: hit, ShadowMask: 1})
				c = mix(c, w.XYZ(), w[3])
				counts[py]++
			}
			img.SetRGBA(px, py, toRGBA(c))
		}
	})

	res.Image = img
	for _, n := range counts {
		res.WaterPixels += n
	}
	return res, nil
}

// Reflection renders the sky as the mirror camera sees it. Row 0 is v = 0,
// the bottom of the mirror view, matching GL texture upload order.
func Reflection(cam mirror.Camera, atm sky.Atmosphere, width, height int) *image.RGBA {
	// The oblique clip only moves the near plane, so the unclipped mirror
	// projection gives the same pixel rays.
	invViewProj := cam.Pose.ProjectionMatrix().Mul(cam.View).Inverse()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	forRows(height, func(y int) {
		ndcY := 2*(float32(y)+0.5)/float32(height) - 1
		for x := 0; x < width; x++ {
			ndcX := 2*(float32(x)+0.5)/float32(width) - 1
			ray := picking.NDCToRay(ndcX, ndcY, invViewProj, cam.Pose.Position)
			img.SetRGBA(x, y, toRGBA(atm.Color(ray.Direction)))
		}
	})
	return img
}

// forRows calls fn for every row, spread over one worker per CPU.
func forRows(height int, fn func(y int)) {
	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(first int) {
			defer wg.Done()
			for y := first; y < height; y += workers {
				fn(y)
			}
		}(w)
	}
	wg.Wait()
}

func mix(a, b math.Vec3, t float32) math.Vec3 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

func toRGBA(c math.Vec3) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(math.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: channel(c.X), G: channel(c.Y), B: channel(c.Z), A: 255}
}
