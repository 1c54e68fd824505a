// Package camera provides camera poses and pose sources for 3D rendering.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/tidemirror/pkg/math"
)

var (
	// ErrInvalidLens is returned for lenses that cannot produce a projection.
	ErrInvalidLens = errors.New("invalid camera lens")
	// ErrInvalidPose is returned for poses without a finite position or a
	// unit orientation.
	ErrInvalidPose = errors.New("invalid camera pose")
)

// parallelTolerance is the sine of the smallest angle LookAt accepts
// between the view direction and up.
const parallelTolerance = 1e-4

// Lens holds the perspective projection parameters.
type Lens struct {
	FovY   float32 // Vertical field of view (radians)
	Aspect float32 // Width / height
	Near   float32
	Far    float32
}

// DefaultLens returns the lens used by the sunset scene (55 degrees, 1..20000).
func DefaultLens(aspect float32) Lens {
	return Lens{
		FovY:   55 * gomath.Pi / 180,
		Aspect: aspect,
		Near:   1,
		Far:    20000,
	}
}

// Validate checks that the lens describes a usable frustum.
func (l Lens) Validate() error {
	switch {
	case l.FovY <= 0 || l.FovY >= gomath.Pi:
		return fmt.Errorf("%w: fov %v", ErrInvalidLens, l.FovY)
	case l.Aspect <= 0:
		return fmt.Errorf("%w: aspect %v", ErrInvalidLens, l.Aspect)
	case l.Near <= 0 || l.Far <= l.Near:
		return fmt.Errorf("%w: near %v far %v", ErrInvalidLens, l.Near, l.Far)
	}
	return nil
}

// Projection returns the symmetric perspective projection for this lens.
func (l Lens) Projection() math.Mat4 {
	return math.Perspective(l.FovY, l.Aspect, l.Near, l.Far)
}

// Pose is a camera position and orientation plus its lens. The camera looks
// down its local -Z axis with +Y up, as in OpenGL.
type Pose struct {
	Position    math.Vec3
	Orientation math.Quat
	Lens
}

// LookAt builds a pose at eye looking toward target. When the view direction
// is parallel to up, a world axis across it stands in for up. An eye equal
// to target yields a pose that fails Validate.
func LookAt(eye, target, up math.Vec3, lens Lens) Pose {
	forward := target.Sub(eye)
	if Parallel(forward, up) {
		up = math.Vec3{Z: -1}
		if math.Abs(forward.Normalize().Z) > 0.9 {
			up = math.Vec3{X: 1}
		}
	}
	view := math.LookAt(eye, target, up)
	world := view.ExtractRotation().Transpose()
	return Pose{
		Position:    eye,
		Orientation: math.QuatFromRotationMatrix(world).Normalize(),
		Lens:        lens,
	}
}

// Parallel reports whether a and b point along the same line, or either is
// zero.
func Parallel(a, b math.Vec3) bool {
	return !(a.Normalize().Cross(b.Normalize()).Length() > parallelTolerance)
}

// Validate reports poses that cannot produce a view: a non-finite position,
// an orientation that is not a unit quaternion, or an invalid lens.
func (p Pose) Validate() error {
	if !p.Position.IsFinite() {
		return fmt.Errorf("%w: position %v", ErrInvalidPose, p.Position)
	}
	q := p.Orientation
	if n := q.Dot(q); !(math.Abs(n-1) <= 1e-3) {
		return fmt.Errorf("%w: orientation %v", ErrInvalidPose, q)
	}
	return p.Lens.Validate()
}

// Forward returns the world-space viewing direction.
func (p Pose) Forward() math.Vec3 {
	return p.Orientation.Rotate(math.Vec3{X: 0, Y: 0, Z: -1})
}

// Up returns the world-space up direction of the camera.
func (p Pose) Up() math.Vec3 {
	return p.Orientation.Rotate(math.Up)
}

// WorldMatrix returns the camera-to-world transform.
func (p Pose) WorldMatrix() math.Mat4 {
	return math.Compose(p.Position, p.Orientation, math.Vec3{X: 1, Y: 1, Z: 1})
}

// ViewMatrix returns the world-to-camera transform (inverse of WorldMatrix).
func (p Pose) ViewMatrix() math.Mat4 {
	view := p.Orientation.ToMat4().Transpose()
	t := view.TransformVec3Direction(p.Position.Negate())
	view[12], view[13], view[14] = t.X, t.Y, t.Z
	return view
}

// ProjectionMatrix returns the lens projection.
func (p Pose) ProjectionMatrix() math.Mat4 {
	return p.Lens.Projection()
}
