// Package lighting holds the sun state shared by the sky dome and the water
// surface.
package lighting

import (
	stdmath "math"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// Sky scattering defaults.
const (
	DefaultTurbidity       = 2
	DefaultRayleigh        = 1
	DefaultMieCoefficient  = 0.005
	DefaultMieDirectionalG = 0.8
	DefaultLuminance       = 1
)

// Sun placement defaults: a low evening sun.
const (
	DefaultDistance    = 400
	DefaultInclination = 0.49
	DefaultAzimuth     = 0.205
)

// SunState is the sun as seen by both the sky model and the water shader.
// Position is the sky uniform; Direction is its normalization, the water
// uniform. Keep both in sync through SetPosition.
type SunState struct {
	Position  math.Vec3
	Direction math.Vec3
	Color     math.Vec3

	Turbidity       float32
	Rayleigh        float32
	MieCoefficient  float32
	MieDirectionalG float32
	Luminance       float32
}

// DefaultSun returns the default sky coefficients with the sun placed by
// DefaultInclination and DefaultAzimuth.
func DefaultSun() SunState {
	s := SunState{
		Color:           math.Vec3{1, 1, 1},
		Turbidity:       DefaultTurbidity,
		Rayleigh:        DefaultRayleigh,
		MieCoefficient:  DefaultMieCoefficient,
		MieDirectionalG: DefaultMieDirectionalG,
		Luminance:       DefaultLuminance,
	}
	s.SetPosition(SunFromAngles(DefaultInclination, DefaultAzimuth, DefaultDistance))
	return s
}

// SetPosition moves the sun and refreshes Direction.
func (s *SunState) SetPosition(p math.Vec3) {
	s.Position = p
	s.Direction = p.Normalize()
}

// SunFromAngles places the sun at distance from the origin. Inclination
// sweeps the elevation (0.5 is the horizon plane for every azimuth), and
// azimuth the heading, both in turns.
func SunFromAngles(inclination, azimuth, distance float32) math.Vec3 {
	theta := stdmath.Pi * (float64(inclination) - 0.5)
	phi := 2 * stdmath.Pi * (float64(azimuth) - 0.5)
	d := float64(distance)

	return math.Vec3{
		float32(d * stdmath.Cos(phi)),
		float32(d * stdmath.Sin(phi) * stdmath.Sin(theta)),
		float32(d * stdmath.Sin(phi) * stdmath.Cos(theta)),
	}
}
