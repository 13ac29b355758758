package x3d

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// element is the closed set of node-level elements the dispatcher handles.
type element int

const (
	elemUnknown element = iota
	elemTransform
	elemGroup
	elemSwitch
	elemShape
	elemDirectionalLight
	elemPointLight
	elemSpotLight
	elemFog
	elemViewpoint
	elemBackground
	elemWorldInfo
)

var elements = map[string]element{
	"Transform":        elemTransform,
	"Group":            elemGroup,
	"Switch":           elemSwitch,
	"Shape":            elemShape,
	"DirectionalLight": elemDirectionalLight,
	"PointLight":       elemPointLight,
	"SpotLight":        elemSpotLight,
	"Fog":              elemFog,
	"Viewpoint":        elemViewpoint,
	"Background":       elemBackground,
	"WorldInfo":        elemWorldInfo,
}

func (p *pass) decodeChildren(parent *scene.Node, n *xmltree.Node) {
	for _, c := range n.Children {
		p.decodeNode(parent, c)
	}
}

// decodeNode builds the object for n, attaches it to parent and recurses
// into container children.
func (p *pass) decodeNode(parent *scene.Node, n *xmltree.Node) {
	if obj, ok := p.resolveUse(n); ok {
		p.reuse(parent, n, obj)
		return
	}

	var (
		obj         *scene.Node
		helpers     []*scene.Node
		hasChildren bool
	)
	switch elements[n.Name] {
	case elemTransform:
		obj = decodeTransform(n)
		hasChildren = true
	case elemGroup:
		obj = scene.NewNode(scene.KindGroup)
		hasChildren = true
	case elemSwitch:
		obj = scene.NewNode(scene.KindSwitch)
		obj.Visible = strings.TrimSpace(n.AttrOr("whichChoice", "-1")) != "-1"
		hasChildren = true
	case elemShape:
		obj = p.decodeShape(n)
	case elemDirectionalLight:
		obj = p.decodeDirectionalLight(n)
	case elemPointLight:
		obj = p.decodePointLight(n)
	case elemSpotLight:
		obj, helpers = p.decodeSpotLight(n)
	case elemFog:
		p.decodeFog(n)
	case elemViewpoint:
		p.decodeViewpoint(n)
	case elemBackground:
		p.decodeBackground(n)
	case elemWorldInfo:
		p.decodeWorldInfo(n)
		return
	case elemUnknown:
		p.log.Debug("pass-through element", zap.String("node", n.Name), zap.Int("line", n.Line))
		p.decodeChildren(parent, n)
		return
	}

	if obj != nil {
		if !attrBool(n, "render", true) {
			obj.Visible = false
		}
		p.assign(n, obj)
		parent.Add(obj)
	}
	for _, h := range helpers {
		parent.Add(h)
	}
	if hasChildren {
		p.decodeChildren(obj, n)
	}
}

// reuse attaches a clone of a resolved node, carrying the labels declared at
// the USE site. Those labels are also recorded in the template's Uses.
func (p *pass) reuse(parent *scene.Node, n *xmltree.Node, obj scene.Labeled) {
	if obj == nil {
		return
	}
	tmpl, ok := obj.(*scene.Node)
	if !ok {
		label, _ := useOf(n)
		p.report(ErrUnsupportedReuse, n, label, "reference does not name a node")
		return
	}
	clone := tmpl.Clone()
	p.assign(n, clone)
	tmpl.Uses.Merge(labelsOf(n))
	parent.Add(clone)
	clone.Traverse(func(c *scene.Node) bool {
		if c.Light != nil && c.Light.Kind == scene.LightDirectional {
			p.out.DirectionalLights = append(p.out.DirectionalLights, c)
		}
		return true
	})
}

func decodeTransform(n *xmltree.Node) *scene.Node {
	obj := scene.NewNode(scene.KindTransform)
	obj.Solid = attrBool(n, "solid", false)
	obj.Window = attrString(n, "window", "")
	obj.Controller = attrString(n, "controller", "")
	obj.Name = attrString(n, "name", "")
	obj.Position = attrVec3(n, "translation", obj.Position)
	obj.Scale = attrVec3(n, "scale", obj.Scale)
	obj.Rotation = attrRotation(n, "rotation")
	return obj
}
