// Package mirror derives the reflection camera for a planar mirror: its pose,
// an oblique-clipped projection and the texture projection used to sample
// the reflection from the main camera's point of view.
package mirror

import (
	"fmt"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Reflection is the main camera mirrored across a plane.
type Reflection struct {
	// Visible is false when the camera is behind the plane; the other
	// fields are then zero and the reflection pass must be skipped.
	Visible bool

	Position math.Vec3 // Mirrored camera position
	Target   math.Vec3 // Mirrored look-at point
	Up       math.Vec3 // Mirrored up direction
}

// FacesAway reports whether the plane is seen from its back side by a camera
// at pos, i.e. the vector from the camera to the plane points along the
// plane normal.
func FacesAway(pos math.Vec3, plane math.Plane) bool {
	toPlane := plane.CoplanarPoint().Sub(pos)
	return toPlane.Dot(plane.Normal) > 0
}

// Solve reflects the main camera across plane. The main pose is not
// modified. A degenerate plane or an invalid main pose is a caller error.
func Solve(main camera.Pose, plane math.Plane) (Reflection, error) {
	if err := main.Validate(); err != nil {
		return Reflection{}, fmt.Errorf("main camera: %w", err)
	}
	if err := plane.Validate(); err != nil {
		return Reflection{}, fmt.Errorf("mirror plane: %w", err)
	}
	if FacesAway(main.Position, plane) {
		return Reflection{}, nil
	}

	lookAt := main.Position.Add(main.Forward())

	return Reflection{
		Visible:  true,
		Position: plane.Reflect(main.Position),
		Target:   plane.Reflect(lookAt),
		Up:       plane.ReflectDirection(main.Up()),
	}, nil
}

// ViewMatrix returns the world-to-camera transform of the mirrored camera.
func (r Reflection) ViewMatrix() math.Mat4 {
	return math.LookAt(r.Position, r.Target, r.Up)
}

// Pose returns the mirrored camera as a pose sharing the main camera's lens.
func (r Reflection) Pose(lens camera.Lens) camera.Pose {
	return camera.LookAt(r.Position, r.Target, r.Up, lens)
}
