package math

import "github.com/chewxy/math32"

// Affine2 is a 2D affine transform stored as the first two rows of a
// row-major 3x3 matrix:
//
//	[A B C]
//	[D E F]
//	[0 0 1]
type Affine2 [6]float32

// IdentityAffine2 returns the identity transform.
func IdentityAffine2() Affine2 {
	return Affine2{1, 0, 0, 0, 1, 0}
}

// UVTransform builds the texture-coordinate matrix of an X3D TextureTransform.
// X3D applies, in order, -center, scale, rotation, center and translation to
// texture coordinates; the coefficients below reproduce that layout with the
// rotation inverted, matching how browsers sample with the transformed UVs.
func UVTransform(center Vec2, rotation float32, scale Vec2, translation Vec2) Affine2 {
	c := math32.Cos(-rotation)
	s := math32.Sin(-rotation)
	sx, sy := scale.X, scale.Y
	cx, cy := center.X, center.Y
	tx, ty := translation.X, translation.Y

	return Affine2{
		sx * c, sx * s, sx*(tx*c+ty*s+cx*c+cy*s) - cx,
		-sy * s, sy * c, sy*(-tx*s+ty*c-cx*s+cy*c) - cy,
	}
}

// Apply transforms a point.
func (a Affine2) Apply(p Vec2) Vec2 {
	return Vec2{
		a[0]*p.X + a[1]*p.Y + a[2],
		a[3]*p.X + a[4]*p.Y + a[5],
	}
}
