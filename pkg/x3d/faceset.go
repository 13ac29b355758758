package x3d

import (
	"fmt"

	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/mesh"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// dataChild returns the first descendant named name. USE is not supported on
// coordinate-like nodes: it is reported and the node treated as absent.
func (p *pass) dataChild(n *xmltree.Node, name string) *xmltree.Node {
	c := n.Descendant(name)
	if c == nil {
		return nil
	}
	if label, ok := useOf(c); ok {
		p.report(ErrUnsupportedReuse, c, label, fmt.Sprintf("USE on %s inside %s", name, n.Name))
		return nil
	}
	return c
}

func vec3s(f []float32) []math.Vec3 {
	out := make([]math.Vec3, len(f)/3)
	for i := range out {
		out[i] = math.Vec3{X: f[3*i], Y: f[3*i+1], Z: f[3*i+2]}
	}
	return out
}

func vec2s(f []float32) []math.Vec2 {
	out := make([]math.Vec2, len(f)/2)
	for i := range out {
		out[i] = math.Vec2{X: f[2*i], Y: f[2*i+1]}
	}
	return out
}

// stream is an optional attribute array addressed through its own index list
// read in lockstep with coordIndex.
type stream struct {
	index []int
	count int
}

// at returns the attribute index for position k of coordIndex.
func (s *stream) at(k int) (int, bool) {
	if k >= len(s.index) {
		return 0, false
	}
	i := s.index[k]
	return i, i >= 0 && i < s.count
}

// decodeIndexedFaceSet triangulates each sentinel-delimited face with the
// fan-from-tail reduction. Texture and normal indices are read at the same
// stream positions as the coordinate indices, so each triangle gets the
// matching UV and normal corners.
func (p *pass) decodeIndexedFaceSet(n *xmltree.Node) *scene.Geometry {
	kind := scene.GeometryIndexedFaceSet
	if t, ok := n.Attr("x3dType"); ok {
		if k, ok := scene.ParseGeometryKind(t); ok {
			kind = k
		}
	}
	geom := scene.NewGeometry(kind, nil)

	coord := p.dataChild(n, "Coordinate")
	texCoord := p.dataChild(n, "TextureCoordinate")
	normal := p.dataChild(n, "Normal")
	if coord == nil {
		p.report(ErrStructuralAbsence, n, "", "no Coordinate")
		return geom
	}

	m := geom.Mesh
	m.Positions = vec3s(attrFloats(coord, "point"))
	coordIndex := attrInts(n, "coordIndex")

	var uvs []math.Vec2
	var uvStream *stream
	if texCoord != nil {
		uvs = vec2s(attrFloats(texCoord, "point"))
		idx := coordIndex
		if n.Has("texCoordIndex") {
			idx = attrInts(n, "texCoordIndex")
		}
		uvStream = &stream{index: idx, count: len(uvs)}
	} else if n.Has("texCoordIndex") {
		p.report(ErrStructuralAbsence, n, "", "texCoordIndex without TextureCoordinate")
	}

	var normals []math.Vec3
	var normalStream *stream
	if normal != nil {
		normals = vec3s(attrFloats(normal, "vector"))
		idx := coordIndex
		if n.Has("normalIndex") {
			idx = attrInts(n, "normalIndex")
		}
		normalStream = &stream{index: idx, count: len(normals)}
	}

	positions := len(m.Positions)
	dropped := 0
	for _, run := range mesh.SplitRuns(coordIndex) {
		for _, tri := range mesh.FanFromTail(run.Len()) {
			var (
				pos [3]uint32
				uv  [3]math.Vec2
				nrm [3]math.Vec3
				ok  = true
			)
			for c, off := range tri {
				k := run.Start + off
				i := coordIndex[k]
				if i >= positions {
					ok = false
					break
				}
				pos[c] = uint32(i)
				if uvStream != nil {
					j, valid := uvStream.at(k)
					if !valid {
						ok = false
						break
					}
					uv[c] = uvs[j]
				}
				if normalStream != nil {
					j, valid := normalStream.at(k)
					if !valid {
						ok = false
						break
					}
					nrm[c] = normals[j]
				}
			}
			if !ok {
				dropped++
				continue
			}
			m.Indices = append(m.Indices, pos[:]...)
			if uvStream != nil {
				m.CornerUVs = append(m.CornerUVs, uv[:]...)
			}
			if normalStream != nil {
				m.CornerNormals = append(m.CornerNormals, nrm[:]...)
			}
		}
	}
	if dropped > 0 {
		p.report(ErrInvalidIndex, n, "", fmt.Sprintf("dropped %d triangles", dropped))
	}

	if normalStream == nil {
		m.ComputeSmoothNormals()
	}
	m.ComputeBounds()

	p.assign(coord, geom)
	if texCoord != nil {
		p.assign(texCoord, geom)
	}
	return geom
}

// decodeIndexedLineSet emits one segment per consecutive index pair of each
// polyline.
func (p *pass) decodeIndexedLineSet(n *xmltree.Node) *scene.Geometry {
	geom := scene.NewGeometry(scene.GeometryIndexedLineSet, mesh.New(mesh.Lines))
	coord := p.dataChild(n, "Coordinate")
	if coord == nil {
		p.report(ErrStructuralAbsence, n, "", "no Coordinate")
		return geom
	}

	m := geom.Mesh
	m.Positions = vec3s(attrFloats(coord, "point"))
	coordIndex := attrInts(n, "coordIndex")
	dropped := 0
	for _, run := range mesh.SplitRuns(coordIndex) {
		for k := run.Start; k+1 < run.End; k++ {
			a, b := coordIndex[k], coordIndex[k+1]
			if a >= len(m.Positions) || b >= len(m.Positions) {
				dropped++
				continue
			}
			m.Indices = append(m.Indices, uint32(a), uint32(b))
		}
	}
	if dropped > 0 {
		p.report(ErrInvalidIndex, n, "", fmt.Sprintf("dropped %d segments", dropped))
	}
	m.ComputeBounds()
	p.assign(coord, geom)
	return geom
}

// decodePointSet attaches per-point colors only when the Color array matches
// the Coordinate array; otherwise colors are dropped and the shorter length
// is used.
func (p *pass) decodePointSet(n *xmltree.Node) *scene.Geometry {
	geom := scene.NewGeometry(scene.GeometryPointSet, mesh.New(mesh.Points))
	coord := p.dataChild(n, "Coordinate")
	if coord == nil {
		p.report(ErrStructuralAbsence, n, "", "no Coordinate")
		return geom
	}

	points := attrFloats(coord, "point")
	var colors []float32
	if c := p.dataChild(n, "Color"); c != nil {
		colors = attrFloats(c, "color")
		if len(colors) == len(points) {
			geom.ColorPerVertex = true
		} else {
			p.report(ErrSizeMismatch, n, "",
				fmt.Sprintf("%d coordinate values, %d color values", len(points), len(colors)))
			points = points[:min(len(points), len(colors))]
		}
	}

	m := geom.Mesh
	m.Positions = vec3s(points)
	if geom.ColorPerVertex {
		for _, c := range vec3s(colors) {
			m.Colors = append(m.Colors, math.Color{R: c.X, G: c.Y, B: c.Z})
		}
	}
	m.ComputeBounds()
	p.assign(coord, geom)
	return geom
}
