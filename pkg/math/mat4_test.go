package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(Vec3{0, 0, -1})
	if got != (Vec3{0, 0, -1}) {
		t.Errorf("TransformDirection: got %v, want (0, 0, -1)", got)
	}
}

func TestCompose(t *testing.T) {
	rot := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	m := Compose(Vec3{1, 0, 0}, rot, Vec3{2, 2, 2})

	// scale, then rotate (1,0,0)->(0,0,-1), then translate
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{1, 0, -2}
	if !approxVec3(got, want) {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
	if s := m.MaxScale(); !approx(s, 2) {
		t.Errorf("MaxScale() = %v, want 2", s)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(DegToRad(45), 1, 0.1, 100)
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-1, 1, -1, 1, 0, 10)
	got := m.TransformPoint(Vec3{1, 1, 0})
	if !approxVec3(got, Vec3{1, 1, -1}) {
		t.Errorf("Ortho corner: got %v, want (1, 1, -1)", got)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	got := m.TransformPoint(Vec3{})
	if !approxVec3(got, Vec3{0, 0, -5}) {
		t.Errorf("LookAt origin: got %v, want (0, 0, -5)", got)
	}
}

func TestDegRad(t *testing.T) {
	if got := RadToDeg(DegToRad(90)); !approx(got, 90) {
		t.Errorf("round trip = %v, want 90", got)
	}
}

func TestInverseAffine(t *testing.T) {
	rot := QuatFromAxisAngle(Vec3{1, 2, 3}, 0.8)
	m := Compose(Vec3{4, -5, 6}, rot, Vec3{2, 3, 0.5})
	p := Vec3{0.7, -1.1, 2.5}
	got := m.InverseAffine().TransformPoint(m.TransformPoint(p))
	if !approxVec3(got, p) {
		t.Errorf("InverseAffine round trip: got %v, want %v", got, p)
	}
	if Scale(0, 1, 1).InverseAffine() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}
