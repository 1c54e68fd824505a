package lighting

import "github.com/Faultbox/tidemirror/pkg/math"

// DayCycle drives the sun around the sky by advancing inclination. A full
// day spans inclination [0, 2), one revolution of the elevation angle.
type DayCycle struct {
	Inclination float32
	Azimuth     float32
	Distance    float32
	Length      float32 // seconds per day; 0 freezes the sun
}

// NewDayCycle starts a cycle at the given placement.
func NewDayCycle(inclination, azimuth, distance, length float32) *DayCycle {
	return &DayCycle{
		Inclination: inclination,
		Azimuth:     azimuth,
		Distance:    distance,
		Length:      length,
	}
}

// Advance moves the sun by dt seconds and writes it into sun. Negative or
// zero dt leaves the placement as is.
func (c *DayCycle) Advance(dt float32, sun *SunState) {
	if c.Length > 0 && dt > 0 {
		c.Inclination += 2 * dt / c.Length
		for c.Inclination >= 2 {
			c.Inclination -= 2
		}
	}
	sun.SetPosition(c.Position())
}

// Position returns the current sun position.
func (c *DayCycle) Position() math.Vec3 {
	return SunFromAngles(c.Inclination, c.Azimuth, c.Distance)
}
