// Package picking casts camera rays through screen points.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// Ray is a half-line from Origin along the normalized Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay returns the ray from eye through a screen point. screenX and
// screenY are in pixels with the origin at the top-left corner; pass pixel
// centers (x+0.5) to sample a pixel. invViewProj is the inverse of
// projection · view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4, eye math.Vec3) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH
	return NDCToRay(ndcX, ndcY, invViewProj, eye)
}

// NDCToRay returns the ray from eye through a normalized device point.
// The point is unprojected at mid depth, which is in front of the eye for
// any perspective projection and keeps float32 precision with distant far
// planes.
func NDCToRay(ndcX, ndcY float32, invViewProj math.Mat4, eye math.Vec3) Ray {
	p := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 0, 1}).PerspectiveDivide()
	return Ray{Origin: eye, Direction: p.Sub(eye).Normalize()}
}

// IntersectPlane returns where the ray meets the plane. ok is false for
// rays parallel to the plane or pointing away from it.
func (r Ray) IntersectPlane(p math.Plane) (hit math.Vec3, ok bool) {
	denom := p.Normal.Dot(r.Direction)
	if math32.Abs(denom) < 1e-6 {
		return math.Vec3{}, false
	}
	t := -p.SignedDistance(r.Origin) / denom
	if t <= 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}
