package scene

import (
	"testing"

	"github.com/Faultbox/tidemirror/internal/engine/camera"
	"github.com/Faultbox/tidemirror/pkg/math"
)

type stubRenderable struct{}

func (stubRenderable) Geometry() *Geometry    { return &Geometry{} }
func (stubRenderable) Material() Material     { return nil }
func (stubRenderable) WorldMatrix() math.Mat4 { return math.Identity() }

type hookRenderable struct {
	stubRenderable
	calls int
}

func (h *hookRenderable) OnBeforeMainPass(Rasterizer, *Graph, camera.Pose) error {
	h.calls++
	return nil
}

func TestTargetSpecMipmaps(t *testing.T) {
	tests := []struct {
		spec TargetSpec
		want bool
	}{
		{TargetSpec{512, 512}, true},
		{TargetSpec{1024, 256}, true},
		{TargetSpec{500, 512}, false},
		{TargetSpec{512, 300}, false},
		{TargetSpec{0, 0}, false},
	}
	for _, tt := range tests {
		if got := tt.spec.Mipmaps(); got != tt.want {
			t.Errorf("%v.Mipmaps() = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestGraphHooksSkipsHidden(t *testing.T) {
	g := NewGraph()
	g.Add("sky", stubRenderable{})
	h := &hookRenderable{}
	water := g.Add("water", h)

	if got := len(g.Hooks()); got != 1 {
		t.Fatalf("Hooks() returned %d hooks, want 1", got)
	}

	water.Visible = false
	if got := len(g.Hooks()); got != 0 {
		t.Errorf("hidden node should not contribute hooks, got %d", got)
	}
}

func TestGraphFind(t *testing.T) {
	g := NewGraph()
	g.Add("a", stubRenderable{})
	b := g.Add("b", stubRenderable{})

	if got := g.Find("b"); got != b {
		t.Errorf("Find(b) = %v, want %v", got, b)
	}
	if got := g.Find("c"); got != nil {
		t.Errorf("Find(c) = %v, want nil", got)
	}
}

func TestViewFromPose(t *testing.T) {
	pose := camera.LookAt(math.Vec3{X: 0, Y: 10, Z: 20}, math.Vec3{}, math.Up, camera.DefaultLens(1))
	v := ViewFromPose(pose)
	if v.Eye != pose.Position {
		t.Errorf("Eye = %v, want %v", v.Eye, pose.Position)
	}
	if v.Projection != pose.ProjectionMatrix() {
		t.Error("projection should come from the lens")
	}
}
