// Package scenetest provides a recording rasterizer for tests that exercise
// render passes without a GPU.
package scenetest

import (
	"errors"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// ErrAllocation is returned by AllocateTarget when FailAllocation is set.
var ErrAllocation = errors.New("scenetest: out of memory")

// Target is an in-memory render target.
type Target struct {
	spec      scene.TargetSpec
	Destroyed bool
}

// Bounds implements scene.Texture.
func (t *Target) Bounds() (int, int) {
	return int(t.spec.Width), int(t.spec.Height)
}

// Spec implements scene.Target.
func (t *Target) Spec() scene.TargetSpec {
	return t.spec
}

// Destroy implements scene.Target.
func (t *Target) Destroy() {
	t.Destroyed = true
}

// Submission records one Render call.
type Submission struct {
	Target  scene.Target
	View    scene.View
	Clear   bool
	Drawn   []string // names of the nodes that were visible
	Shadows bool
	Stereo  bool
}

// Rasterizer records every state change and render submission.
type Rasterizer struct {
	FailAllocation bool
	RenderErr      error

	Allocated   []*Target
	Submissions []Submission

	target  scene.Target
	shadows bool
	stereo  bool
}

// New returns a rasterizer with shadow auto-update and stereo enabled, so
// tests can observe that passes toggle and restore them.
func New() *Rasterizer {
	return &Rasterizer{shadows: true, stereo: true}
}

// AllocateTarget implements scene.Rasterizer.
func (r *Rasterizer) AllocateTarget(spec scene.TargetSpec) (scene.Target, error) {
	if r.FailAllocation {
		return nil, ErrAllocation
	}
	t := &Target{spec: spec}
	r.Allocated = append(r.Allocated, t)
	return t, nil
}

// RenderTarget implements scene.Rasterizer.
func (r *Rasterizer) RenderTarget() scene.Target { return r.target }

// SetRenderTarget implements scene.Rasterizer.
func (r *Rasterizer) SetRenderTarget(t scene.Target) { r.target = t }

// ShadowAutoUpdate implements scene.Rasterizer.
func (r *Rasterizer) ShadowAutoUpdate() bool { return r.shadows }

// SetShadowAutoUpdate implements scene.Rasterizer.
func (r *Rasterizer) SetShadowAutoUpdate(enabled bool) { r.shadows = enabled }

// StereoEnabled implements scene.Rasterizer.
func (r *Rasterizer) StereoEnabled() bool { return r.stereo }

// SetStereoEnabled implements scene.Rasterizer.
func (r *Rasterizer) SetStereoEnabled(enabled bool) { r.stereo = enabled }

// Render implements scene.Rasterizer.
func (r *Rasterizer) Render(g *scene.Graph, view scene.View, clear bool) error {
	s := Submission{
		Target:  r.target,
		View:    view,
		Clear:   clear,
		Shadows: r.shadows,
		Stereo:  r.stereo,
	}
	for _, n := range g.Nodes() {
		if n.Visible {
			s.Drawn = append(s.Drawn, n.Name)
		}
	}
	r.Submissions = append(r.Submissions, s)
	return r.RenderErr
}

// OffscreenSubmissions returns the submissions made into a non-default target.
func (r *Rasterizer) OffscreenSubmissions() []Submission {
	var out []Submission
	for _, s := range r.Submissions {
		if s.Target != nil {
			out = append(out, s)
		}
	}
	return out
}

// Uniforms records values passed through scene.UniformSetter.
type Uniforms struct {
	Bools    map[string]bool
	Floats   map[string]float32
	Vec3s    map[string]math.Vec3
	Mat4s    map[string]math.Mat4
	Textures map[string]scene.Texture
}

// NewUniforms returns an empty recorder.
func NewUniforms() *Uniforms {
	return &Uniforms{
		Bools:    map[string]bool{},
		Floats:   map[string]float32{},
		Vec3s:    map[string]math.Vec3{},
		Mat4s:    map[string]math.Mat4{},
		Textures: map[string]scene.Texture{},
	}
}

// SetBool implements scene.UniformSetter.
func (u *Uniforms) SetBool(name string, v bool) { u.Bools[name] = v }

// SetFloat implements scene.UniformSetter.
func (u *Uniforms) SetFloat(name string, v float32) { u.Floats[name] = v }

// SetVec3 implements scene.UniformSetter.
func (u *Uniforms) SetVec3(name string, v math.Vec3) { u.Vec3s[name] = v }

// SetMat4 implements scene.UniformSetter.
func (u *Uniforms) SetMat4(name string, m math.Mat4) { u.Mat4s[name] = m }

// SetTexture implements scene.UniformSetter.
func (u *Uniforms) SetTexture(name string, t scene.Texture) { u.Textures[name] = t }
