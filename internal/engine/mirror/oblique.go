package mirror

import "github.com/Faultbox/tidemirror/pkg/math"

// ViewSpaceClipPlane expresses a world plane in the space of view as the
// homogeneous clip vector (n, -d).
func ViewSpaceClipPlane(plane math.Plane, view math.Mat4) math.Vec4 {
	return plane.Transform(view).ClipVec4()
}

// ObliqueClip replaces the near plane of a perspective projection with the
// view-space clip plane, following Lengyel's oblique frustum construction.
// Only the third row changes; clipBias pulls the plane toward the camera to
// hide seams at the waterline.
//
// See http://www.terathon.com/lengyel/Lengyel-Oblique.pdf.
func ObliqueClip(proj math.Mat4, clip math.Vec4, clipBias float32) math.Mat4 {
	var q math.Vec4
	q[0] = (math.Sign(clip[0]) + proj[8]) / proj[0]
	q[1] = (math.Sign(clip[1]) + proj[9]) / proj[5]
	q[2] = -1
	q[3] = (1 + proj[10]) / proj[14]

	c := clip.Scale(2 / clip.Dot(q))

	out := proj
	out[2] = c[0]
	out[6] = c[1]
	out[10] = c[2] + 1 - clipBias
	out[14] = c[3]
	return out
}
