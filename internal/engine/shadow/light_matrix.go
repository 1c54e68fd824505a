package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Caster is implemented by renderables that can opt out of the depth pass.
// Renderables that do not implement it cast shadows.
type Caster interface {
	CastShadow() bool
}

// Casts reports whether n takes part in the depth pass.
func Casts(n *scene.Node) bool {
	if !n.Visible {
		return false
	}
	if c, ok := n.Renderable.(Caster); ok {
		return c.CastShadow()
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the center point of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the half-diagonal.
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Length() / 2
}

func (b AABB) extend(p math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: math32.Min(b.Min.X, p.X), Y: math32.Min(b.Min.Y, p.Y), Z: math32.Min(b.Min.Z, p.Z)},
		Max: math.Vec3{X: math32.Max(b.Max.X, p.X), Y: math32.Max(b.Max.Y, p.Y), Z: math32.Max(b.Max.Z, p.Z)},
	}
}

// Bounds returns the world-space box around every shadow caster of g.
// ok is false when there is nothing to shadow.
func Bounds(g *scene.Graph) (box AABB, ok bool) {
	for _, n := range g.Nodes() {
		if !Casts(n) {
			continue
		}
		geom := n.Geometry()
		if geom == nil || geom.VertexCount() == 0 {
			continue
		}
		world := n.WorldMatrix()
		for i := 0; i+2 < len(geom.Positions); i += 3 {
			p := world.TransformVec3(math.Vec3{X: geom.Positions[i], Y: geom.Positions[i+1], Z: geom.Positions[i+2]})
			if !ok {
				box = AABB{Min: p, Max: p}
				ok = true
				continue
			}
			box = box.extend(p)
		}
	}
	return box, ok
}

// LightMatrix returns the orthographic view-projection of a directional
// light covering bounds. toLight is the normalized direction towards the
// light.
func LightMatrix(toLight math.Vec3, bounds AABB) math.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()
	if radius < 1 {
		radius = 1
	}

	lightDistance := radius * 2
	lightPos := center.Add(toLight.Scale(lightDistance))

	up := math.Up
	if math32.Abs(toLight.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(lightPos, center, up)

	// Padding keeps casters on the edge out of the clamp border.
	halfSize := radius * 1.1
	far := lightDistance + halfSize
	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)

	return proj.Mul(view)
}
