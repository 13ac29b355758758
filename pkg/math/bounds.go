package math

import "github.com/chewxy/math32"

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox returns a box that contains nothing; expanding it by a point
// yields a zero-size box at that point.
func EmptyBox() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Expand returns the box grown to include p.
func (b Box3) Expand(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box3) Union(other Box3) Box3 {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Box3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the center point of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Transform returns the axis-aligned box enclosing the eight transformed corners.
func (b Box3) Transform(m Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		out = out.Expand(m.TransformPoint(p))
	}
	return out
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// BoundingSphere returns a sphere centered on the box of the points whose
// radius reaches the farthest point. An empty input yields a zero sphere.
func BoundingSphere(points []Vec3) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}
	box := EmptyBox()
	for _, p := range points {
		box = box.Expand(p)
	}
	center := box.Center()
	var maxSq float32
	for _, p := range points {
		d := p.Sub(center)
		if sq := d.Dot(d); sq > maxSq {
			maxSq = sq
		}
	}
	return Sphere{Center: center, Radius: math32.Sqrt(maxSq)}
}
