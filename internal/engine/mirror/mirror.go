package mirror

import (
	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Camera is the fully derived mirror camera for one frame. It is rebuilt
// from scratch every frame and never updated in place.
type Camera struct {
	Visible bool

	Pose          camera.Pose
	View          math.Mat4 // World to mirror-camera space
	Projection    math.Mat4 // Oblique-clipped projection
	TextureMatrix math.Mat4 // World to reflection texture coordinates

	Eye   math.Vec3  // Main camera position, fed to the water shader
	Plane math.Plane // Mirror plane in world space
}

// Derive runs the full per-frame derivation: reflect the main camera, build
// the texture projection and clip the projection at the mirror plane. When
// the mirror faces away, the returned camera has Visible false and only Eye
// and Plane set.
func Derive(main camera.Pose, plane math.Plane, clipBias float32) (Camera, error) {
	r, err := Solve(main, plane)
	if err != nil {
		return Camera{}, err
	}
	out := Camera{Eye: main.Position, Plane: plane}
	if !r.Visible {
		return out, nil
	}

	view := r.ViewMatrix()
	clip := ViewSpaceClipPlane(plane, view)
	proj := ObliqueClip(main.ProjectionMatrix(), clip, clipBias)

	out.Visible = true
	out.Pose = r.Pose(main.Lens)
	out.View = view
	out.Projection = proj
	out.TextureMatrix = TextureMatrix(proj, view)
	return out, nil
}
