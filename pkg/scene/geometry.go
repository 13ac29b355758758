package scene

import "github.com/Faultbox/x3dscene/pkg/mesh"

// Geometry is a mesh tagged with the primitive that produced it.
type Geometry struct {
	Labels
	Kind GeometryKind
	Mesh *mesh.Mesh
	// ColorPerVertex is set for point sets whose colors matched their points.
	ColorPerVertex bool
}

// NewGeometry wraps m. A nil mesh is replaced by an empty triangle mesh.
func NewGeometry(kind GeometryKind, m *mesh.Mesh) *Geometry {
	if m == nil {
		m = mesh.New(mesh.Triangles)
	}
	return &Geometry{Kind: kind, Mesh: m}
}

// Empty returns the placeholder used when a shape has no usable geometry.
func Empty() *Geometry {
	return NewGeometry(GeometryUnknown, nil)
}
