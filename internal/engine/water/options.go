package water

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// ErrInvalidOptions is returned by New for options it cannot build from.
var ErrInvalidOptions = errors.New("invalid water options")

// NormalMap is a tileable normal texture the shader and the CPU model both
// sample.
type NormalMap interface {
	scene.ImageTexture
	Sampler
}

// Options configures a water surface.
type Options struct {
	TextureWidth  int32
	TextureHeight int32

	ClipBias float32
	Alpha    float32
	Time     float32

	Normals NormalMap // nil selects a procedural map

	SunDirection    math.Vec3
	SunColor        math.Vec3
	WaterColor      math.Vec3
	Eye             math.Vec3
	DistortionScale float32
	Size            float32
	Side            scene.Side

	ReceiveShadows bool
}

// DefaultOptions returns the stock water settings.
func DefaultOptions() Options {
	return Options{
		TextureWidth:    512,
		TextureHeight:   512,
		ClipBias:        0,
		Alpha:           1,
		Time:            0,
		SunDirection:    math.Vec3{0.70707, 0.70707, 0},
		SunColor:        math.RGB(0xFFFFFF),
		WaterColor:      math.RGB(0x7F7F7F),
		DistortionScale: 20,
		Size:            1,
		Side:            scene.FrontSide,
	}
}

// Validate checks the options New depends on.
func (o Options) Validate() error {
	if o.TextureWidth <= 0 || o.TextureHeight <= 0 {
		return fmt.Errorf("%w: texture size %dx%d", ErrInvalidOptions, o.TextureWidth, o.TextureHeight)
	}
	if o.Alpha < 0 || o.Alpha > 1 {
		return fmt.Errorf("%w: alpha %v", ErrInvalidOptions, o.Alpha)
	}
	if o.Time < 0 {
		return fmt.Errorf("%w: negative start time %v", ErrInvalidOptions, o.Time)
	}
	return nil
}
