// Package mesh holds the vertex containers produced by the geometry builders
// together with the parametric generators for the built-in primitives.
package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/x3dscene/pkg/math"
)

// Topology selects how indices are interpreted.
type Topology int

const (
	Triangles Topology = iota
	Lines
	Points
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	default:
		return "unknown"
	}
}

// Mesh is an indexed vertex buffer.
//
// Normals, UVs and Colors are either empty or parallel to Positions.
// CornerUVs and CornerNormals are either empty or parallel to Indices and
// carry per-face-corner attributes for meshes whose corners do not share
// attribute values, as produced by indexed face sets.
type Mesh struct {
	Topology  Topology
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Colors    []math.Color
	Indices   []uint32

	CornerUVs     []math.Vec2
	CornerNormals []math.Vec3

	Bounds math.Box3
	Sphere math.Sphere
}

// New returns an empty mesh with the given topology and empty bounds.
func New(t Topology) *Mesh {
	return &Mesh{Topology: t, Bounds: math.EmptyBox()}
}

// IsEmpty reports whether the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// PrimitiveCount returns the number of triangles, segments or points.
func (m *Mesh) PrimitiveCount() int {
	switch m.Topology {
	case Triangles:
		return len(m.Indices) / 3
	case Lines:
		return len(m.Indices) / 2
	default:
		if len(m.Indices) > 0 {
			return len(m.Indices)
		}
		return len(m.Positions)
	}
}

// Triangle returns the three position indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// ComputeBounds refreshes the bounding box and sphere from the positions.
func (m *Mesh) ComputeBounds() {
	box := math.EmptyBox()
	for _, p := range m.Positions {
		box = box.Expand(p)
	}
	m.Bounds = box
	m.Sphere = math.BoundingSphere(m.Positions)
}

// ComputeSmoothNormals replaces Normals with area-weighted vertex normals
// accumulated from the triangles.
func (m *Mesh) ComputeSmoothNormals() {
	normals := make([]math.Vec3, len(m.Positions))
	if m.Topology != Triangles {
		m.Normals = normals
		return
	}
	n := uint32(len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// RotateX rotates positions and normals around the X axis.
func (m *Mesh) RotateX(angle float32) {
	for i := range m.Positions {
		m.Positions[i] = snapVec(m.Positions[i].RotateX(angle))
	}
	for i := range m.Normals {
		m.Normals[i] = snapVec(m.Normals[i].RotateX(angle))
	}
	for i := range m.CornerNormals {
		m.CornerNormals[i] = m.CornerNormals[i].RotateX(angle)
	}
}

// RotateY rotates positions and normals around the Y axis.
func (m *Mesh) RotateY(angle float32) {
	for i := range m.Positions {
		m.Positions[i] = snapVec(m.Positions[i].RotateY(angle))
	}
	for i := range m.Normals {
		m.Normals[i] = snapVec(m.Normals[i].RotateY(angle))
	}
	for i := range m.CornerNormals {
		m.CornerNormals[i] = m.CornerNormals[i].RotateY(angle)
	}
}

// Translate offsets every position.
func (m *Mesh) Translate(d math.Vec3) {
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Add(d)
	}
}

// snapVec flushes rotation noise near zero.
func snapVec(v math.Vec3) math.Vec3 {
	return math.Vec3{X: snap(v.X), Y: snap(v.Y), Z: snap(v.Z)}
}

func snap(v float32) float32 {
	if math32.Abs(v) < 1e-6 {
		return 0
	}
	return v
}
