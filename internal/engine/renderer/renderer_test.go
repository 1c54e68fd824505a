package renderer

import (
	"image"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

type flatMaterial struct {
	transparent bool
}

func (m flatMaterial) Shader() scene.Shader      { return scene.Shader{Name: "flat"} }
func (m flatMaterial) Side() scene.Side          { return scene.FrontSide }
func (m flatMaterial) Transparent() bool         { return m.transparent }
func (m flatMaterial) Apply(scene.UniformSetter) {}

type quad struct {
	mat scene.Material
}

func (q quad) Geometry() *scene.Geometry { return &scene.Geometry{} }
func (q quad) Material() scene.Material  { return q.mat }
func (q quad) WorldMatrix() math.Mat4    { return math.Identity() }

func TestDrawOrder(t *testing.T) {
	g := scene.NewGraph()
	g.Add("water", quad{flatMaterial{transparent: true}})
	g.Add("sky", quad{flatMaterial{}})
	g.Add("glass", quad{flatMaterial{transparent: true}})
	hidden := g.Add("hidden", quad{flatMaterial{}})
	hidden.Visible = false
	g.Add("boat", quad{flatMaterial{}})

	var names []string
	for _, n := range drawOrder(g.Nodes()) {
		names = append(names, n.Name)
	}

	want := []string{"sky", "boat", "water", "glass"}
	if len(names) != len(want) {
		t.Fatalf("drawOrder = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("drawOrder = %v, want %v", names, want)
			break
		}
	}
}

func TestCullMode(t *testing.T) {
	tests := []struct {
		side    scene.Side
		enabled bool
		face    uint32
	}{
		{scene.FrontSide, true, gl.BACK},
		{scene.BackSide, true, gl.FRONT},
		{scene.DoubleSide, false, gl.BACK},
	}
	for _, tt := range tests {
		enabled, face := cullMode(tt.side)
		if enabled != tt.enabled || (enabled && face != tt.face) {
			t.Errorf("cullMode(%v) = %v, 0x%x", tt.side, enabled, face)
		}
	}
}

func TestInterleave(t *testing.T) {
	g := &scene.Geometry{
		Positions: []float32{0, 1, 2, 3, 4, 5},
		UVs:       []float32{0.5, 0.25, 1, 0},
	}
	data, stride := interleave(g)
	if stride != 5 {
		t.Fatalf("stride = %d, want 5", stride)
	}
	want := []float32{0, 1, 2, 0.5, 0.25, 3, 4, 5, 1, 0}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data = %v, want %v", data, want)
		}
	}

	g.UVs = nil
	data, stride = interleave(g)
	if stride != 3 || len(data) != 6 {
		t.Errorf("positions only: stride %d len %d", stride, len(data))
	}
}

func TestTightPixels(t *testing.T) {
	parent := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range parent.Pix {
		parent.Pix[i] = byte(i)
	}

	if got := tightPixels(parent); &got[0] != &parent.Pix[0] {
		t.Error("packed image should not be copied")
	}

	sub := parent.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	pix := tightPixels(sub)
	if len(pix) != 2*2*4 {
		t.Fatalf("len = %d, want 16", len(pix))
	}
	if pix[0] != parent.Pix[parent.PixOffset(1, 1)] || pix[8] != parent.Pix[parent.PixOffset(1, 2)] {
		t.Errorf("sub-image rows not copied: %v", pix)
	}
}

func TestWrapMode(t *testing.T) {
	if wrapMode(scene.Repeat) != gl.REPEAT {
		t.Error("Repeat should map to GL_REPEAT")
	}
	if wrapMode(scene.ClampToEdge) != gl.CLAMP_TO_EDGE {
		t.Error("ClampToEdge should map to GL_CLAMP_TO_EDGE")
	}
}
