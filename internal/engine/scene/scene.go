// Package scene defines the capability interfaces shared by drawable nodes
// and rasterizers: renderables with a geometry and material, an ordered
// node graph, render targets and the rasterizer contract.
package scene

import (
	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// Geometry is an indexed triangle mesh in local space.
type Geometry struct {
	Positions []float32 // x,y,z per vertex
	UVs       []float32 // u,v per vertex, optional
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Renderable is anything the rasterizer can draw.
type Renderable interface {
	Geometry() *Geometry
	Material() Material
	WorldMatrix() math.Mat4
}

// PrePassHook is implemented by renderables that need work before the main
// pass, such as rendering a reflection of the rest of the scene.
type PrePassHook interface {
	OnBeforeMainPass(r Rasterizer, g *Graph, main camera.Pose) error
}

// View is the camera state a single render submission is bound to.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// ViewFromPose returns the view of a camera pose.
func ViewFromPose(p camera.Pose) View {
	return View{
		View:       p.ViewMatrix(),
		Projection: p.ProjectionMatrix(),
		Eye:        p.Position,
	}
}

// ViewProjection returns projection · view.
func (v View) ViewProjection() math.Mat4 {
	return v.Projection.Mul(v.View)
}
