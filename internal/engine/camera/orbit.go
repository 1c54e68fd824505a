package camera

import (
	gomath "math"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// OrbitCamera circles a center point. The host drives it with Advance; it
// has no input handling of its own.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Elevation above the horizon (radians)
	Yaw      float32 // Rotation around Y (radians)

	// AngularSpeed is the yaw rate in radians per second.
	AngularSpeed float32

	MinPitch float32
	MaxPitch float32
}

// NewOrbitCamera creates an orbit camera that reproduces the sunset scene
// viewpoint (30, 30, 100) looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MinPitch: -1.5,
		MaxPitch: 1.5,
	}
	c.PlaceAt(math.Vec3{X: 30, Y: 30, Z: 100})
	return c
}

// PlaceAt sets the spherical coordinates so the camera sits at pos.
func (c *OrbitCamera) PlaceAt(pos math.Vec3) {
	offset := pos.Sub(c.Center)
	c.Distance = offset.Length()
	if c.Distance == 0 {
		c.Pitch, c.Yaw = 0, 0
		return
	}
	c.Pitch = float32(gomath.Asin(float64(offset.Y / c.Distance)))
	c.Yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
}

// Position returns the camera position in world space: the offset at the
// given pitch in the YZ plane, turned by yaw around Y.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch := float64(c.Pitch)
	offset := math.Vec3{
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)),
	}
	return c.Center.Add(math.RotateY(c.Yaw).TransformVec3Direction(offset))
}

// Advance moves the camera along its orbit by dt seconds.
func (c *OrbitCamera) Advance(dt float32) {
	c.Yaw += c.AngularSpeed * dt
	if c.Yaw > gomath.Pi {
		c.Yaw -= 2 * gomath.Pi
	} else if c.Yaw < -gomath.Pi {
		c.Yaw += 2 * gomath.Pi
	}
	c.Pitch = math.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// Pose returns the current camera pose looking at the center.
func (c *OrbitCamera) Pose(lens Lens) Pose {
	return LookAt(c.Position(), c.Center, math.Up, lens)
}
