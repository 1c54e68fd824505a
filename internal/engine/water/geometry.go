package water

import "github.com/Faultbox/tidemirror/internal/engine/scene"

// BuildPlane creates a width×height plane in the local XY plane, facing +Z,
// split into segments×segments quads. UVs run from (0, 0) at the -X,-Y
// corner to (1, 1). Rotate it by -π/2 about X to lay it flat facing +Y.
func BuildPlane(width, height float32, segments int) *scene.Geometry {
	if segments < 1 {
		segments = 1
	}
	halfW := width / 2
	halfH := height / 2
	stride := segments + 1

	g := &scene.Geometry{
		Positions: make([]float32, 0, stride*stride*3),
		UVs:       make([]float32, 0, stride*stride*2),
		Indices:   make([]uint32, 0, segments*segments*6),
	}

	for iy := 0; iy <= segments; iy++ {
		v := float32(iy) / float32(segments)
		y := -halfH + v*height
		for ix := 0; ix <= segments; ix++ {
			u := float32(ix) / float32(segments)
			x := -halfW + u*width
			g.Positions = append(g.Positions, x, y, 0)
			g.UVs = append(g.UVs, u, v)
		}
	}

	// Counter-clockwise seen from +Z.
	for iy := 0; iy < segments; iy++ {
		for ix := 0; ix < segments; ix++ {
			a := uint32(iy*stride + ix)
			b := a + 1
			c := a + uint32(stride)
			d := c + 1
			g.Indices = append(g.Indices, a, b, d, a, d, c)
		}
	}
	return g
}
