package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaneNormalizes(t *testing.T) {
	p, err := NewPlane(Vec3{0, 5, 0}, Vec3{3, 2, -1})
	require.NoError(t, err)
	assert.Equal(t, Vec3{0, 1, 0}, p.Normal)
	assert.InDelta(t, 2, p.Distance, 1e-6)
}

func TestNewPlaneDegenerate(t *testing.T) {
	nan := float32(math.NaN())
	cases := []Vec3{
		{0, 0, 0},
		{nan, 1, 0},
		{float32(math.Inf(1)), 0, 0},
	}
	for _, n := range cases {
		_, err := NewPlane(n, Vec3{})
		assert.ErrorIs(t, err, ErrDegeneratePlane, "normal %v", n)
	}
}

func TestPlaneValidate(t *testing.T) {
	assert.NoError(t, Plane{Normal: Vec3{0, 0, 1}, Distance: 4}.Validate())
	assert.ErrorIs(t, Plane{Normal: Vec3{0, 0, 0}}.Validate(), ErrDegeneratePlane)
	assert.ErrorIs(t, Plane{Normal: Vec3{0, 2, 0}}.Validate(), ErrDegeneratePlane)
}

func TestPlaneReflectXZ(t *testing.T) {
	p := Plane{Normal: Vec3{0, 1, 0}}
	got := p.Reflect(Vec3{10, 50, 100})
	assert.Equal(t, Vec3{10, -50, 100}, got)
}

func TestPlaneReflectOffset(t *testing.T) {
	p := Plane{Normal: Vec3{0, 1, 0}, Distance: 5}
	got := p.Reflect(Vec3{1, 8, 2})
	assert.True(t, got.ApproxEqual(Vec3{1, 2, 2}, 1e-5), "got %v", got)
}

func TestPlaneReflectIsInvolution(t *testing.T) {
	normals := []Vec3{
		{0, 1, 0},
		{1, 1, 0},
		{-0.3, 0.8, 0.5},
		{0, 0, -1},
	}
	points := []Vec3{
		{10, 50, 100},
		{-3, 0.25, 7},
		{400, -12, 9},
	}
	for _, n := range normals {
		p, err := NewPlane(n, Vec3{})
		require.NoError(t, err)
		for _, pt := range points {
			if Abs(p.SignedDistance(pt)) < 1e-4 {
				continue
			}
			once := p.Reflect(pt)
			twice := p.Reflect(once)
			assert.True(t, twice.ApproxEqual(pt, 1e-3), "n=%v p=%v twice=%v", n, pt, twice)
			assert.InDelta(t, -p.SignedDistance(pt), p.SignedDistance(once), 1e-3)
		}
	}
}

func TestPlaneTransformRigid(t *testing.T) {
	p := Plane{Normal: Vec3{0, 1, 0}, Distance: 0}
	m := Translate(0, 3, 0).Mul(RotateX(float32(math.Pi / 2)))
	got := p.Transform(m)

	assert.True(t, got.Normal.ApproxEqual(Vec3{0, 0, 1}, 1e-5), "normal %v", got.Normal)
	// the translated origin must still lie on the moved plane
	assert.InDelta(t, 0, got.SignedDistance(Vec3{0, 3, 0}), 1e-5)
}

func TestPlaneTransformNonUniformScale(t *testing.T) {
	n := Vec3{1, 1, 0}.Normalize()
	p, err := NewPlane(n, Vec3{1, 0, 0})
	require.NoError(t, err)

	m := Scale(2, 1, 1)
	got := p.Transform(m)

	// (1,0,0) and (0,1,0) lie on p; their images must lie on the result
	assert.InDelta(t, 0, got.SignedDistance(m.TransformVec3(Vec3{1, 0, 0})), 1e-5)
	assert.InDelta(t, 0, got.SignedDistance(m.TransformVec3(Vec3{0, 1, 0})), 1e-5)
	assert.InDelta(t, 1, got.Normal.Length(), 1e-5)
}

func TestPlaneClipVec4(t *testing.T) {
	p := Plane{Normal: Vec3{0, 1, 0}, Distance: 2}
	c := p.ClipVec4()
	assert.Equal(t, Vec4{0, 1, 0, -2}, c)
	assert.InDelta(t, 3, c.Dot(Vec4{7, 5, 1, 1}), 1e-6)
}
