package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/x3dscene/pkg/math"
)

// FrameDirectionalLights places each directional light outside the world
// bounding sphere of roots, opposite its direction, and fits its shadow
// camera to that sphere. Nodes that are not directional lights are ignored.
// It returns the sphere used.
func FrameDirectionalLights(lights []*Node, roots ...*Node) math.Sphere {
	box := math.EmptyBox()
	for _, r := range roots {
		box = box.Union(r.WorldBounds())
	}
	if box.IsEmpty() {
		return math.Sphere{}
	}
	sphere := math.Sphere{Center: box.Center(), Radius: box.Size().Length() / 2}
	radius := math32.Max(sphere.Radius, 1)

	for _, n := range lights {
		if n == nil || n.Light == nil || n.Light.Kind != LightDirectional {
			continue
		}
		parent := math.Identity()
		if n.Parent != nil {
			parent = n.Parent.WorldMatrix()
		}
		dir := parent.TransformDirection(n.Light.Direction).Normalize()
		if dir == (math.Vec3{}) {
			dir = math.Vec3{Z: -1}
		}
		world := sphere.Center.Sub(dir.Scale(2 * radius))
		n.Position = parent.InverseAffine().TransformPoint(world)

		if s := n.Light.Shadow; s != nil {
			s.Left, s.Right = -radius, radius
			s.Bottom, s.Top = -radius, radius
			s.Far = 3 * radius
		}
	}
	return sphere
}

// ShadowMatrix returns projection * view for a framed directional light's
// shadow camera, looking from the light's world position along its direction.
func ShadowMatrix(n *Node) math.Mat4 {
	if n == nil || !n.Light.CastsShadow() {
		return math.Identity()
	}
	s := n.Light.Shadow
	world := n.WorldMatrix()
	eye := world.TransformPoint(math.Vec3{})
	dir := world.TransformDirection(n.Light.Direction).Normalize()
	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Dot(up)) > 0.999 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, eye.Add(dir), up)
	return math.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far).Mul(view)
}
