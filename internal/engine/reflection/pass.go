// Package reflection renders a scene into an off-screen target from a mirror
// camera while leaving the rasterizer exactly as it found it.
package reflection

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tidemirror/internal/engine/mirror"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
)

// ErrTargetAllocation wraps rasterizer failures to create the reflection target.
var ErrTargetAllocation = errors.New("reflection target allocation failed")

// Outcome describes what a pass did for the frame.
type Outcome int

const (
	// Rendered means the reflection target holds this frame's reflection.
	Rendered Outcome = iota
	// Skipped means the mirror faced away and nothing was submitted.
	Skipped
	// Degraded means there is no target; the surface falls back to a flat fill.
	Degraded
)

func (o Outcome) String() string {
	switch o {
	case Rendered:
		return "rendered"
	case Skipped:
		return "skipped"
	case Degraded:
		return "degraded"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Allocate creates a reflection target. Sizes that are not powers of two are
// accepted; the rasterizer disables mipmaps for them.
func Allocate(r scene.Rasterizer, spec scene.TargetSpec) (scene.Target, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrTargetAllocation, spec.Width, spec.Height)
	}
	t, err := r.AllocateTarget(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTargetAllocation, err)
	}
	return t, nil
}

// Pass renders the reflection of a graph into Target.
type Pass struct {
	Target  scene.Target
	Exclude *scene.Node // The mirror surface itself, hidden during the pass
	Log     *zap.Logger
}

// Run renders g from the mirror camera into the pass target. The excluded
// node is hidden, shadow map updates and stereo are disabled, and all of
// it, including the previous render target, is restored on return.
func (p *Pass) Run(r scene.Rasterizer, g *scene.Graph, mc mirror.Camera) (Outcome, error) {
	if !mc.Visible {
		p.debug("reflection skipped, mirror faces away")
		return Skipped, nil
	}
	if p.Target == nil {
		return Degraded, nil
	}

	ov := Acquire(r)
	defer ov.Release()

	if p.Exclude != nil {
		wasVisible := p.Exclude.Visible
		p.Exclude.Visible = false
		defer func() { p.Exclude.Visible = wasVisible }()
	}

	r.SetStereoEnabled(false)
	r.SetShadowAutoUpdate(false)
	r.SetRenderTarget(p.Target)

	view := scene.View{
		View:       mc.View,
		Projection: mc.Projection,
		Eye:        mc.Pose.Position,
	}
	if err := r.Render(g, view, true); err != nil {
		return Rendered, fmt.Errorf("reflection render: %w", err)
	}
	return Rendered, nil
}

func (p *Pass) debug(msg string) {
	if p.Log != nil {
		p.Log.Debug(msg)
	}
}
