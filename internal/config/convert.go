package config

import (
	stdmath "math"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/internal/engine/lighting"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/internal/engine/sky"
	"github.com/Faultbox/tidemirror/internal/engine/water"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Lens returns the main camera lens for a viewport of the given aspect.
func (c *CameraConfig) Lens(aspect float32) camera.Lens {
	return camera.Lens{
		FovY:   c.FovDegrees * stdmath.Pi / 180,
		Aspect: aspect,
		Near:   c.Near,
		Far:    c.Far,
	}
}

// Pose returns the still camera at Position looking at Target.
func (c *CameraConfig) Pose(aspect float32) camera.Pose {
	return camera.LookAt(vec3(c.Position), vec3(c.Target), math.Up, c.Lens(aspect))
}

// Orbit returns an orbit camera placed at Position around Target.
func (c *CameraConfig) Orbit() *camera.OrbitCamera {
	o := camera.NewOrbitCamera()
	o.Center = vec3(c.Target)
	o.PlaceAt(vec3(c.Position))
	o.AngularSpeed = c.OrbitSpeed
	return o
}

// SetView stores a camera placement, such as the current orbit position.
func (c *CameraConfig) SetView(position, target math.Vec3) {
	c.Position = [3]float32{position.X, position.Y, position.Z}
	c.Target = [3]float32{target.X, target.Y, target.Z}
}

// Restyle pushes the settings that can change on a live surface.
func (w *WaterConfig) Restyle(s *water.Water) {
	s.SetWaterColor(w.WaterColor.Vec3())
	s.SetDistortionScale(w.DistortionScale)
	s.SetAlpha(w.Alpha)
}

// Options returns the water construction options. The normal map is left
// for the caller to load.
func (w *WaterConfig) Options() water.Options {
	opts := water.DefaultOptions()
	opts.TextureWidth = int32(w.TextureWidth)
	opts.TextureHeight = int32(w.TextureHeight)
	opts.ClipBias = w.ClipBias
	opts.Alpha = w.Alpha
	opts.DistortionScale = w.DistortionScale
	opts.Size = w.Size
	opts.SunColor = w.SunColor.Vec3()
	opts.WaterColor = w.WaterColor.Vec3()
	opts.Side = scene.FrontSide
	opts.ReceiveShadows = w.ReceiveShadows
	return opts
}

// Sun returns the sun state placed by inclination and azimuth.
func (s *SkyConfig) Sun(color Color) lighting.SunState {
	sun := lighting.SunState{
		Color:           color.Vec3(),
		Turbidity:       s.Turbidity,
		Rayleigh:        s.Rayleigh,
		MieCoefficient:  s.MieCoefficient,
		MieDirectionalG: s.MieDirectionalG,
		Luminance:       s.Luminance,
	}
	sun.SetPosition(lighting.SunFromAngles(s.Inclination, s.Azimuth, s.Distance))
	return sun
}

// DayCycle returns the cycle driving the sun, or nil when DayLength is 0.
func (s *SkyConfig) DayCycle() *lighting.DayCycle {
	if s.DayLength <= 0 {
		return nil
	}
	return lighting.NewDayCycle(s.Inclination, s.Azimuth, s.Distance, s.DayLength)
}

// Model returns the sky scattering model.
func (s *SkyConfig) Model() sky.Model {
	m := sky.DefaultModel()
	m.Turbidity = s.Turbidity
	m.Rayleigh = s.Rayleigh
	m.MieCoefficient = s.MieCoefficient
	m.MieDirectionalG = s.MieDirectionalG
	m.Luminance = s.Luminance
	return m
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
