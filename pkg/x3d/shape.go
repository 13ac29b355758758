package x3d

import (
	"go.uber.org/zap"

	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// decodeShape builds a shape node from its appearance and geometry children.
// The first appearance and the first geometry win; a PBRAppearance sibling
// suppresses any classic Appearance.
func (p *pass) decodeShape(n *xmltree.Node) *scene.Node {
	var (
		geom *scene.Geometry
		mat  *scene.Material
	)
	hasPBR := false
	for _, c := range n.Children {
		if c.Name == "PBRAppearance" {
			hasPBR = true
			break
		}
	}

	for _, c := range n.Children {
		if obj, ok := p.resolveUse(c); ok {
			switch v := obj.(type) {
			case nil:
			case *scene.Geometry:
				geom = v
			case *scene.Material:
				mat = v
			default:
				label, _ := useOf(c)
				p.report(ErrUnsupportedReuse, c, label, "shape child must reference geometry or material")
			}
			continue
		}

		if mat == nil {
			switch c.Name {
			case "Appearance":
				if hasPBR {
					continue
				}
				mat = p.decodeAppearance(c)
			case "PBRAppearance":
				mat = p.decodePBRAppearance(c)
			}
			if mat != nil {
				p.assign(c, mat)
				continue
			}
		}

		if geom == nil {
			geom = p.decodeGeometry(c)
			if geom != nil {
				p.assign(c, geom)
				continue
			}
		}

		p.log.Debug("ignored shape child", zap.String("node", c.Name), zap.Int("line", c.Line))
	}

	if geom == nil {
		geom = scene.Empty()
	}
	if mat == nil {
		mat = p.defaultMaterial(geom)
	}

	obj := scene.NewNode(scene.KindShape)
	obj.Geometry = geom
	obj.Material = mat
	obj.RenderMode = scene.RenderModeFor(geom.Kind)
	if mat.Opaque() {
		obj.CastShadow = attrBool(n, "castShadows", false)
	}
	obj.ReceiveShadow = true
	obj.Pickable = attrBool(n, "isPickable", true)
	return obj
}

func (p *pass) defaultMaterial(geom *scene.Geometry) *scene.Material {
	if geom.Kind == scene.GeometryPointSet && geom.ColorPerVertex {
		m := scene.NewMaterial(scene.MaterialPoints)
		m.PointSize = p.pointSize
		m.SizeAttenuation = false
		m.VertexColors = true
		return m
	}
	return scene.NewMaterial(scene.MaterialBasic)
}
