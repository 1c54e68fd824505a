package sky

import (
	_ "embed"

	"github.com/Faultbox/tidemirror/internal/engine/lighting"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

// VertexShader is the sky dome vertex stage.
//
//go:embed sky.vert
var VertexShader string

// FragmentShader is the sky dome fragment stage.
//
//go:embed sky.frag
var FragmentShader string

// DefaultScale is the edge length of the sky box in world units.
const DefaultScale = 10000

// Sky is a back-faced box drawn around the scene with the scattering model.
type Sky struct {
	Model       Model
	SunPosition math.Vec3
	Scale       float32

	geometry *scene.Geometry
}

// New creates a sky box of the given edge length.
func New(model Model, scale float32) *Sky {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Sky{
		Model:       model,
		SunPosition: lighting.SunFromAngles(lighting.DefaultInclination, lighting.DefaultAzimuth, lighting.DefaultDistance),
		Scale:       scale,
		geometry:    Box(),
	}
}

// SetSun copies the sun placement and scattering coefficients.
func (s *Sky) SetSun(sun lighting.SunState) {
	s.SunPosition = sun.Position
	up := s.Model.Up
	s.Model = ModelFromSun(sun)
	if up != (math.Vec3{}) {
		s.Model.Up = up
	}
}

// Atmosphere returns the per-sun terms for the current sun.
func (s *Sky) Atmosphere() Atmosphere {
	return s.Model.Atmosphere(s.SunPosition)
}

// Geometry implements scene.Renderable.
func (s *Sky) Geometry() *scene.Geometry { return s.geometry }

// WorldMatrix implements scene.Renderable.
func (s *Sky) WorldMatrix() math.Mat4 {
	return math.Scale(s.Scale, s.Scale, s.Scale)
}

// Material implements scene.Renderable.
func (s *Sky) Material() scene.Material { return (*material)(s) }

// CastShadow reports false; the sky box never enters the depth pass.
func (s *Sky) CastShadow() bool { return false }

type material Sky

func (m *material) Shader() scene.Shader {
	return scene.Shader{Name: "sky", Vertex: VertexShader, Fragment: FragmentShader}
}

func (m *material) Side() scene.Side { return scene.BackSide }

func (m *material) Transparent() bool { return false }

func (m *material) Apply(u scene.UniformSetter) {
	up := m.Model.Up
	if up == (math.Vec3{}) {
		up = math.Up
	}
	u.SetVec3("sunPosition", m.SunPosition)
	u.SetVec3("up", up)
	u.SetFloat("luminance", m.Model.Luminance)
	u.SetFloat("turbidity", m.Model.Turbidity)
	u.SetFloat("rayleigh", m.Model.Rayleigh)
	u.SetFloat("mieCoefficient", m.Model.MieCoefficient)
	u.SetFloat("mieDirectionalG", m.Model.MieDirectionalG)
}

// Box returns a unit cube centred on the origin with outward-facing
// counter-clockwise triangles.
func Box() *scene.Geometry {
	corners := [8]math.Vec3{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}
	faces := [6][4]uint32{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}

	g := &scene.Geometry{}
	for _, c := range corners {
		g.Positions = append(g.Positions, c.X, c.Y, c.Z)
	}
	for _, f := range faces {
		g.Indices = append(g.Indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return g
}
