package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// Transform eye position - should result in origin (or close to it)
	// This is a simple sanity check
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestPerspectiveMatchesMathgl(t *testing.T) {
	fov := float32(55 * math.Pi / 180)
	got := Perspective(fov, 16.0/9.0, 1, 20000)
	want := mgl32.Perspective(fov, 16.0/9.0, 1, 20000)
	assertMat4Near(t, "Perspective", got, Mat4(want), 1e-4)
}

func TestLookAtMatchesMathgl(t *testing.T) {
	eye := Vec3{30, 30, 100}
	center := Vec3{0, 5, 0}
	got := LookAt(eye, center, Up)
	want := mgl32.LookAtV(mgl32.Vec3{30, 30, 100}, mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 1, 0})
	assertMat4Near(t, "LookAt", got, Mat4(want), 1e-4)
}

func TestInverseMatchesMathgl(t *testing.T) {
	m := Translate(4, -2, 9).Mul(RotateY(0.7)).Mul(Scale(2, 3, 0.5))
	got := m.Inverse()
	want := mgl32.Mat4(m).Inv()
	assertMat4Near(t, "Inverse", got, Mat4(want), 1e-4)

	product := m.Mul(got)
	assertMat4Near(t, "M * M^-1", product, Identity(), 1e-4)
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose moved translation to %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should return the original")
	}
}

func TestExtractRotation(t *testing.T) {
	rot := RotateY(0.4)
	m := Translate(7, 8, 9).Mul(rot).Mul(Scale(3, 3, 3))
	got := m.ExtractRotation()
	assertMat4Near(t, "ExtractRotation", got, rot, 1e-5)
}

func TestComposeMatchesProduct(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.9)
	pos := Vec3{1, -2, 3}
	got := Compose(pos, q, Vec3{2, 1, 4})
	want := Translate(1, -2, 3).Mul(q.ToMat4()).Mul(Scale(2, 1, 4))
	assertMat4Near(t, "Compose", got, want, 1e-5)
	if got.Position() != pos {
		t.Errorf("Position() = %v, want %v", got.Position(), pos)
	}
}

func assertMat4Near(t *testing.T, name string, got, want Mat4, eps float32) {
	t.Helper()
	for i := range got {
		if abs(got[i]-want[i]) > eps*(1+abs(want[i])) {
			t.Errorf("%s element %d: got %f, want %f", name, i, got[i], want[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
