package water

import (
	_ "embed"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
)

// VertexShader is the water vertex stage.
//
//go:embed water.vert
var VertexShader string

// FragmentShader is the water fragment stage; Shade is its CPU twin.
//
//go:embed water.frag
var FragmentShader string

type material Water

func (m *material) Shader() scene.Shader {
	return scene.Shader{Name: "water", Vertex: VertexShader, Fragment: FragmentShader}
}

func (m *material) Side() scene.Side { return m.opts.Side }

func (m *material) Transparent() bool { return true }

func (m *material) Apply(u scene.UniformSetter) {
	w := (*Water)(m)
	uni := w.Uniforms()

	u.SetFloat("alpha", uni.Alpha)
	u.SetFloat("time", uni.Time)
	u.SetFloat("size", uni.Size)
	u.SetFloat("distortionScale", uni.DistortionScale)
	u.SetVec3("sunColor", uni.SunColor)
	u.SetVec3("sunDirection", uni.SunDirection)
	u.SetVec3("eye", uni.Eye)
	u.SetVec3("waterColor", uni.WaterColor)
	u.SetMat4("textureMatrix", uni.TextureMatrix)
	u.SetBool("flatFill", uni.FlatFill)
	u.SetBool("receiveShadows", w.opts.ReceiveShadows)

	u.SetTexture("normalSampler", w.opts.Normals)
	if w.target != nil {
		u.SetTexture("mirrorSampler", w.target)
	}
}
