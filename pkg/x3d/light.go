package x3d

import (
	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// lightNode returns a light node and the light's common fields, or nil when
// the light is switched off.
func lightNode(n *xmltree.Node, kind scene.LightKind) *scene.Node {
	if !attrBool(n, "on", true) {
		return nil
	}
	obj := scene.NewNode(scene.KindLight)
	obj.Light = &scene.Light{
		Kind:      kind,
		Color:     attrRGB(n, "color", math.White),
		Intensity: attrFloat(n, "intensity", 1),
	}
	return obj
}

// shadow returns shadow parameters when castShadows is set.
func shadow(n *xmltree.Node, mapSize int, far float32) *scene.Shadow {
	if !attrBool(n, "castShadows", false) {
		return nil
	}
	return &scene.Shadow{
		MapSize: attrInt(n, "shadowMapSize", mapSize),
		Radius:  attrFloat(n, "shadowsRadius", 1),
		Bias:    attrFloat(n, "shadowBias", 0),
		Near:    attrFloat(n, "zNear", 0.001),
		Far:     far,
	}
}

// decodeDirectionalLight places the light at -direction and scales its
// intensity. The node is also listed in the result for the caller's framing
// stage.
func (p *pass) decodeDirectionalLight(n *xmltree.Node) *scene.Node {
	obj := lightNode(n, scene.LightDirectional)
	if obj == nil {
		return nil
	}
	dir := attrVec3(n, "direction", math.Vec3{Z: -1})
	obj.Light.Direction = dir
	obj.Light.Intensity *= p.directionalScale
	obj.Light.Shadow = shadow(n, 1024, attrFloat(n, "zFar", 2000))
	obj.Position = dir.Negate()
	p.out.DirectionalLights = append(p.out.DirectionalLights, obj)
	return obj
}

func (p *pass) decodePointLight(n *xmltree.Node) *scene.Node {
	obj := lightNode(n, scene.LightPoint)
	if obj == nil {
		return nil
	}
	radius := attrFloat(n, "radius", 100)
	obj.Light.Decay = attrVec3(n, "attenuation", math.Vec3{X: 1}).X
	obj.Light.Distance = radius
	obj.Light.Shadow = shadow(n, 512, radius)
	obj.Position = attrVec3(n, "location", math.Vec3{})
	return obj
}

// decodeSpotLight also returns the target node at location + direction,
// which belongs next to the light in the parent.
func (p *pass) decodeSpotLight(n *xmltree.Node) (*scene.Node, []*scene.Node) {
	obj := lightNode(n, scene.LightSpot)
	if obj == nil {
		return nil, nil
	}
	beamWidth := attrFloat(n, "beamWidth", 0.785)
	cutOff := attrFloat(n, "cutOffAngle", 0.785)
	radius := attrFloat(n, "radius", 100)
	location := attrVec3(n, "location", math.Vec3{})
	dir := attrVec3(n, "direction", math.Vec3{Z: -1})

	l := obj.Light
	l.Angle = cutOff
	if beamWidth > cutOff || cutOff == 0 {
		l.Penumbra = 0
	} else {
		l.Penumbra = 1 - beamWidth/cutOff
	}
	l.Decay = attrVec3(n, "attenuation", math.Vec3{X: 1}).X
	l.Distance = radius
	l.Direction = dir
	l.Target = location.Add(dir)
	l.Shadow = shadow(n, 512, radius)
	obj.Position = location

	target := scene.NewNode(scene.KindLightTarget)
	target.Position = l.Target
	target.Pickable = false
	return obj, []*scene.Node{target}
}
