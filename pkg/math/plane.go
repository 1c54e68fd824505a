package math

import "errors"

// ErrDegeneratePlane is returned for planes whose normal has no usable
// direction (zero length or non-finite).
var ErrDegeneratePlane = errors.New("degenerate plane normal")

// Plane is an oriented plane: points p on it satisfy Normal·p = Distance.
// Normal is kept unit length by the constructors.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// NewPlane builds the plane through point with the given normal.
// The normal is normalized; a degenerate normal yields ErrDegeneratePlane.
func NewPlane(normal, point Vec3) (Plane, error) {
	if !normal.IsFinite() || !point.IsFinite() {
		return Plane{}, ErrDegeneratePlane
	}
	n := normal.Normalize()
	if n == (Vec3{}) {
		return Plane{}, ErrDegeneratePlane
	}
	return Plane{Normal: n, Distance: n.Dot(point)}, nil
}

// Validate checks that the normal is finite and unit length.
func (p Plane) Validate() error {
	if !p.Normal.IsFinite() || !isFinite(p.Distance) {
		return ErrDegeneratePlane
	}
	if Abs(p.Normal.Length()-1) > 1e-3 {
		return ErrDegeneratePlane
	}
	return nil
}

// CoplanarPoint returns the point of the plane closest to the origin.
func (p Plane) CoplanarPoint() Vec3 {
	return p.Normal.Scale(p.Distance)
}

// SignedDistance returns how far pt lies on the normal side of the plane.
func (p Plane) SignedDistance(pt Vec3) float32 {
	return p.Normal.Dot(pt) - p.Distance
}

// Reflect mirrors a point across the plane: v - 2(v·n - d)n.
func (p Plane) Reflect(pt Vec3) Vec3 {
	return pt.Sub(p.Normal.Scale(2 * p.SignedDistance(pt)))
}

// ReflectDirection mirrors a direction vector; translation does not apply.
func (p Plane) ReflectDirection(v Vec3) Vec3 {
	return v.Reflect(p.Normal)
}

// Transform returns the plane moved by the affine matrix m. The normal is
// carried by the inverse transpose so non-uniform scale stays correct.
func (p Plane) Transform(m Mat4) Plane {
	normalMatrix := m.Inverse().Transpose()
	n := normalMatrix.TransformVec3Direction(p.Normal).Normalize()
	ref := m.TransformVec3(p.CoplanarPoint())
	return Plane{Normal: n, Distance: n.Dot(ref)}
}

// ClipVec4 returns the plane as the homogeneous vector (n, -d), so that
// ClipVec4·(x, y, z, 1) is the signed distance.
func (p Plane) ClipVec4() Vec4 {
	return Vec4{p.Normal.X, p.Normal.Y, p.Normal.Z, -p.Distance}
}
