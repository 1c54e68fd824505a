package scene

import "github.com/Faultbox/tidemirror/pkg/math"

// TargetSpec describes an off-screen color buffer.
type TargetSpec struct {
	Width  int32
	Height int32
}

// Mipmaps reports whether a full mip chain can be generated. Only
// power-of-two sizes get one; other sizes are still valid targets.
func (s TargetSpec) Mipmaps() bool {
	return math.IsPowerOfTwo(int(s.Width)) && math.IsPowerOfTwo(int(s.Height))
}

// Target is an off-screen color buffer that can be rendered into and then
// sampled as a texture.
type Target interface {
	Texture
	Spec() TargetSpec
	Destroy()
}

// Rasterizer is the GPU-side collaborator. A nil Target means the default
// framebuffer.
type Rasterizer interface {
	AllocateTarget(spec TargetSpec) (Target, error)

	RenderTarget() Target
	SetRenderTarget(t Target)

	ShadowAutoUpdate() bool
	SetShadowAutoUpdate(enabled bool)

	StereoEnabled() bool
	SetStereoEnabled(enabled bool)

	// Render draws every visible node of g with view into the current
	// render target, clearing it first when clear is set.
	Render(g *Graph, view View, clear bool) error
}
