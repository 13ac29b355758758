// Package scene is the in-memory scene graph produced by the X3D decoder:
// spatial nodes, geometry, materials, textures, lights and the host
// container slots for camera, background, fog and world metadata.
package scene

import (
	"slices"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/x3dscene/pkg/math"
)

// Node is a spatial container with a local transform and ordered children.
// Shapes carry a Geometry and a Material; lights carry a Light.
type Node struct {
	Labels

	Kind     NodeKind
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	Visible       bool
	Pickable      bool
	CastShadow    bool
	ReceiveShadow bool

	// Transform extras.
	Solid      bool
	Window     string
	Controller string

	// Uses collects the labels of USE sites that instanced this node.
	Uses Labels `copier:"-"`

	RenderMode RenderMode
	Geometry   *Geometry `copier:"-"`
	Material   *Material `copier:"-"`
	Light      *Light    `copier:"-"`

	Parent   *Node   `copier:"-"`
	Children []*Node `copier:"-"`
}

// NewNode returns a visible, pickable node with an identity transform.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:     kind,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  true,
		Pickable: true,
	}
}

// Add appends child, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Remove detaches child. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	i := slices.Index(n.Children, child)
	if i < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	child.Parent = nil
	return true
}

// Clone returns a deep copy of the subtree rooted at n. Transform state,
// flags, labels and lights are copied; geometry and material are shared
// between the original and the clone. The clone has no parent.
func (n *Node) Clone() *Node {
	c := &Node{}
	if err := copier.CopyWithOption(c, n, copier.Option{DeepCopy: true}); err != nil {
		*c = *n
	}
	c.Labels = slices.Clone(n.Labels)
	c.Uses = nil
	c.Geometry = n.Geometry
	c.Material = n.Material
	c.Light = n.Light.Clone()
	c.Parent = nil
	c.Children = nil
	for _, child := range n.Children {
		c.Add(child.Clone())
	}
	return c
}

// Traverse calls fn for n and every descendant in depth-first pre-order.
// Returning false from fn skips that node's children.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Traverse(fn)
	}
}

// FindLabeled returns the first object in the subtree carrying label. Nodes
// are checked before their geometry, material and textures.
func (n *Node) FindLabeled(label string) Labeled {
	var found Labeled
	n.Traverse(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Has(label) {
			found = c
			return false
		}
		if c.Geometry != nil && c.Geometry.Has(label) {
			found = c.Geometry
			return false
		}
		if c.Material != nil {
			if c.Material.Has(label) {
				found = c.Material
				return false
			}
			for _, t := range c.Material.Textures() {
				if t.Has(label) {
					found = t
					return false
				}
			}
		}
		return true
	})
	return found
}

// LocalMatrix composes translation, rotation and scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldBounds returns the world-space box enclosing every geometry in the
// subtree. Invisible subtrees are skipped.
func (n *Node) WorldBounds() math.Box3 {
	box := math.EmptyBox()
	n.Traverse(func(c *Node) bool {
		if !c.Visible {
			return false
		}
		if c.Geometry != nil && c.Geometry.Mesh != nil && !c.Geometry.Mesh.IsEmpty() {
			box = box.Union(c.Geometry.Mesh.Bounds.Transform(c.WorldMatrix()))
		}
		return true
	})
	return box
}
