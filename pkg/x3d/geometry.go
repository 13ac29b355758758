package x3d

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/mesh"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// decodeGeometry dispatches on the geometry element name. It returns nil for
// elements that are not geometry.
func (p *pass) decodeGeometry(n *xmltree.Node) *scene.Geometry {
	kind, ok := scene.ParseGeometryKind(n.Name)
	if !ok {
		return nil
	}
	switch kind {
	case scene.GeometryBox:
		return decodeBox(n)
	case scene.GeometrySphere:
		return decodeSphere(n)
	case scene.GeometryCone:
		return decodeCone(n)
	case scene.GeometryCylinder:
		return decodeCylinder(n)
	case scene.GeometryPlane:
		return decodePlane(n)
	case scene.GeometryElevationGrid:
		return p.decodeElevationGrid(n)
	case scene.GeometryIndexedFaceSet:
		return p.decodeIndexedFaceSet(n)
	case scene.GeometryIndexedLineSet:
		return p.decodeIndexedLineSet(n)
	case scene.GeometryPointSet:
		return p.decodePointSet(n)
	case scene.GeometryUnknown:
	}
	return nil
}

func decodeBox(n *xmltree.Node) *scene.Geometry {
	size := attrVec3(n, "size", math.Vec3{X: 2, Y: 2, Z: 2})
	return scene.NewGeometry(scene.GeometryBox, mesh.Box(size.X, size.Y, size.Z))
}

// decodeSphere reads subdivision as "width,height" segment counts. The seam
// starts at -pi/2 to match X3D texture mapping.
func decodeSphere(n *xmltree.Node) *scene.Geometry {
	radius := attrFloat(n, "radius", 1)
	w, h := 8, 8
	if s, ok := n.Attr("subdivision"); ok {
		parts := strings.Split(s, ",")
		if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			w = v
		}
		if len(parts) > 1 {
			if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				h = v
			}
		}
	}
	return scene.NewGeometry(scene.GeometrySphere, mesh.Sphere(radius, w, h, -math32.Pi/2))
}

// Cones and cylinders start their seam at pi/2 and are then turned a
// quarter around Y to match X3D texture mapping.
func decodeCone(n *xmltree.Node) *scene.Geometry {
	m := mesh.Cylinder(mesh.CylinderOptions{
		RadiusBottom:   attrFloat(n, "bottomRadius", 1),
		Height:         attrFloat(n, "height", 2),
		RadialSegments: attrInt(n, "subdivision", 32),
		ThetaStart:     math32.Pi / 2,
		Side:           attrBool(n, "side", true),
		Bottom:         attrBool(n, "bottom", true),
	})
	m.RotateY(math32.Pi / 2)
	m.ComputeBounds()
	return scene.NewGeometry(scene.GeometryCone, m)
}

func decodeCylinder(n *xmltree.Node) *scene.Geometry {
	radius := attrFloat(n, "radius", 1)
	m := mesh.Cylinder(mesh.CylinderOptions{
		RadiusTop:      radius,
		RadiusBottom:   radius,
		Height:         attrFloat(n, "height", 2),
		RadialSegments: attrInt(n, "subdivision", 32),
		ThetaStart:     math32.Pi / 2,
		Side:           attrBool(n, "side", true),
		Top:            attrBool(n, "top", true),
		Bottom:         attrBool(n, "bottom", true),
	})
	m.RotateY(math32.Pi / 2)
	m.ComputeBounds()
	return scene.NewGeometry(scene.GeometryCylinder, m)
}

// decodePlane builds a plane in XZ facing +Y.
func decodePlane(n *xmltree.Node) *scene.Geometry {
	size := attrVec2(n, "size", math.Vec2{X: 1, Y: 1})
	m := mesh.Plane(size.X, size.Y, 1, 1)
	m.RotateX(-math32.Pi / 2)
	m.ComputeBounds()
	return scene.NewGeometry(scene.GeometryPlane, m)
}

func (p *pass) decodeElevationGrid(n *xmltree.Node) *scene.Geometry {
	xDim := attrInt(n, "xDimension", 0)
	zDim := attrInt(n, "zDimension", 0)
	if xDim < 2 || zDim < 2 {
		p.report(ErrStructuralAbsence, n, "", "elevation grid needs at least 2x2 samples")
		return scene.NewGeometry(scene.GeometryElevationGrid, nil)
	}
	heights := attrFloats(n, "height")
	m := mesh.ElevationGrid(xDim, zDim, attrFloat(n, "xSpacing", 1), attrFloat(n, "zSpacing", 1), heights)
	return scene.NewGeometry(scene.GeometryElevationGrid, m)
}
