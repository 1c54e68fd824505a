package reflection

import "github.com/Faultbox/tidemirror/internal/engine/scene"

// Override captures the rasterizer state a reflection pass changes. Release
// puts it back; it is safe to call more than once, so it can be deferred
// right after Acquire and still be released early.
type Override struct {
	r        scene.Rasterizer
	target   scene.Target
	shadows  bool
	stereo   bool
	released bool
}

// Acquire snapshots the current render target, shadow auto-update and
// stereo flags.
func Acquire(r scene.Rasterizer) *Override {
	return &Override{
		r:       r,
		target:  r.RenderTarget(),
		shadows: r.ShadowAutoUpdate(),
		stereo:  r.StereoEnabled(),
	}
}

// Release restores the captured state.
func (o *Override) Release() {
	if o.released {
		return
	}
	o.released = true
	o.r.SetStereoEnabled(o.stereo)
	o.r.SetShadowAutoUpdate(o.shadows)
	o.r.SetRenderTarget(o.target)
}
