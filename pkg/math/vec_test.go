package math

import (
	"testing"
)

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func approxVec3(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	got := Vec2{3, 4}.Length()
	if got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero", got)
	}
}

const halfPi = float32(1.5707963267948966)

func TestVec3Rotate(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"rotateX quarter", Vec3{0, 0, 1}.RotateX(-halfPi), Vec3{0, 1, 0}},
		{"rotateY quarter", Vec3{1, 0, 0}.RotateY(halfPi), Vec3{0, 0, -1}},
		{"rotateY zero", Vec3{1, 2, 3}.RotateY(0), Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approxVec3(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want uint32
	}{
		{White, 0xffffff},
		{Gray(0), 0x000000},
		{Color{1, 0, 0.5}, 0xff0080},
		{Color{2, -1, 0}, 0xff0000},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %06x, want %06x", tt.c, got, tt.want)
		}
	}
}
