package scene

import (
	"image"

	"github.com/Faultbox/tidemirror/pkg/math"
)

// Side selects which triangle faces a material draws.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Shader names a GLSL program. Rasterizers cache compiled programs by Name.
type Shader struct {
	Name     string
	Vertex   string
	Fragment string
}

// Uniforms every rasterizer sets before Material.Apply.
const (
	UniformModel      = "modelMatrix"
	UniformView       = "viewMatrix"
	UniformProjection = "projectionMatrix"
	UniformCamera     = "cameraPosition"

	UniformShadowsEnabled = "shadowsEnabled"
	UniformShadowMap      = "shadowMap"
	UniformLightSpace     = "lightSpaceMatrix"
)

// Material supplies the program and per-draw uniforms of a renderable.
type Material interface {
	Shader() Shader
	Side() Side
	Transparent() bool
	Apply(u UniformSetter)
}

// UniformSetter receives uniform values for the draw being prepared.
type UniformSetter interface {
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
	SetMat4(name string, m math.Mat4)
	SetTexture(name string, t Texture)
}

// Texture is a sampled image. Render targets are textures; so are CPU
// images the rasterizer uploads on first use.
type Texture interface {
	Bounds() (width, height int)
}

// Wrap is a texture addressing mode.
type Wrap int

const (
	ClampToEdge Wrap = iota
	Repeat
)

// ImageTexture is a texture backed by CPU pixels.
type ImageTexture interface {
	Texture
	RGBA() *image.RGBA
	Wrap() Wrap
}
