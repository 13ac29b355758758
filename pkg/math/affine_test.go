package math

import (
	"math"
	"testing"
)

func TestUVTransformIdentity(t *testing.T) {
	got := UVTransform(Vec2{}, 0, Vec2{1, 1}, Vec2{})
	want := IdentityAffine2()
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("UVTransform identity = %v, want %v", got, want)
		}
	}
}

func TestUVTransformCoefficients(t *testing.T) {
	center := Vec2{0.5, 0.25}
	scale := Vec2{2, 3}
	translation := Vec2{0.1, -0.2}
	theta := float32(0.6)

	got := UVTransform(center, theta, scale, translation)

	c := float32(math.Cos(float64(-theta)))
	s := float32(math.Sin(float64(-theta)))
	want := Affine2{
		2 * c, 2 * s, 2*(0.1*c+(-0.2)*s+0.5*c+0.25*s) - 0.5,
		-3 * s, 3 * c, 3*(-0.1*s+(-0.2)*c-0.5*s+0.25*c) - 0.25,
	}
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Errorf("coefficient %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUVTransformTranslationOnly(t *testing.T) {
	a := UVTransform(Vec2{}, 0, Vec2{1, 1}, Vec2{0.25, 0.5})
	got := a.Apply(Vec2{0, 0})
	if !approx(got.X, 0.25) || !approx(got.Y, 0.5) {
		t.Errorf("Apply = %v, want (0.25, 0.5)", got)
	}
}
