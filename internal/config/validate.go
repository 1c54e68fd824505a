package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/logger"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first setting the scene cannot run with.
func (c *Config) Validate() error {
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, g.Width, g.Height)
	}
	if g.Shadows && g.ShadowResolution <= 0 {
		return fmt.Errorf("%w: shadow resolution %d", ErrInvalid, g.ShadowResolution)
	}

	cam := c.Camera
	if cam.FovDegrees <= 0 || cam.FovDegrees >= 180 {
		return fmt.Errorf("%w: camera fov %v", ErrInvalid, cam.FovDegrees)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalid, cam.Near, cam.Far)
	}
	if cam.Position == cam.Target {
		return fmt.Errorf("%w: camera position equals target", ErrInvalid)
	}
	if camera.Parallel(vec3(cam.Target).Sub(vec3(cam.Position)), math.Up) {
		return fmt.Errorf("%w: camera looks straight along the up axis", ErrInvalid)
	}

	w := c.Water
	if w.TextureWidth <= 0 || w.TextureHeight <= 0 {
		return fmt.Errorf("%w: water texture size %dx%d", ErrInvalid, w.TextureWidth, w.TextureHeight)
	}
	if w.Alpha < 0 || w.Alpha > 1 {
		return fmt.Errorf("%w: water alpha %v", ErrInvalid, w.Alpha)
	}
	if w.TimeStep < 0 {
		return fmt.Errorf("%w: water time step %v", ErrInvalid, w.TimeStep)
	}
	if w.Extent <= 0 {
		return fmt.Errorf("%w: water extent %v", ErrInvalid, w.Extent)
	}

	s := c.Sky
	if s.Scale <= 0 || s.Distance <= 0 {
		return fmt.Errorf("%w: sky scale %v distance %v", ErrInvalid, s.Scale, s.Distance)
	}
	if s.Luminance <= 0 {
		return fmt.Errorf("%w: sky luminance %v", ErrInvalid, s.Luminance)
	}
	if s.DayLength < 0 {
		return fmt.Errorf("%w: day length %v", ErrInvalid, s.DayLength)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
