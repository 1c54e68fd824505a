package mirror

import "github.com/Faultbox/tidemirror/pkg/math"

// Bias maps clip space [-1, 1] to texture space [0, 1] on x, y and z.
var Bias = math.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 0.5, 0,
	0.5, 0.5, 0.5, 1,
}

// TextureMatrix returns bias · projection · view.
func TextureMatrix(proj, view math.Mat4) math.Mat4 {
	return Bias.Mul(proj).Mul(view)
}

// ProjectToTexture maps a world point to reflection texture coordinates,
// dividing by w as the fragment program does.
func ProjectToTexture(textureMatrix math.Mat4, world math.Vec3) math.Vec2 {
	c := textureMatrix.MulVec4(world.Vec4(1))
	return math.Vec2{X: c[0] / c[3], Y: c[1] / c[3]}
}
