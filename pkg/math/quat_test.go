package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if !approx(length, 1) {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngleZeroAxis(t *testing.T) {
	if q := QuatFromAxisAngle(Vec3{}, 1); q != QuatIdentity() {
		t.Errorf("zero axis should yield identity, got %v", q)
	}
}

func TestQuatFromAxisAngleUnnormalizedAxis(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 5, 0}, 1)
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, 1)
	if !approx(a.Y, b.Y) || !approx(a.W, b.W) {
		t.Errorf("axis should be normalized: %v vs %v", a, b)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}, 0.7)
	v := Vec3{0.3, -2, 4}
	a := q.Rotate(v)
	b := q.ToMat4().TransformPoint(v)
	if !approxVec3(a, b) {
		t.Errorf("Rotate %v != ToMat4 %v", a, b)
	}
}

func TestQuatMul(t *testing.T) {
	y90 := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	got := y90.Mul(y90).Rotate(Vec3{1, 0, 0})
	if !approxVec3(got, Vec3{-1, 0, 0}) {
		t.Errorf("two quarter turns: got %v, want (-1, 0, 0)", got)
	}
}
