package x3d

import (
	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// decodeAppearance builds a Phong material from the first Material and
// ImageTexture descendants.
func (p *pass) decodeAppearance(n *xmltree.Node) *scene.Material {
	mat := scene.NewMaterial(scene.MaterialPhong)
	mat.Color = math.Gray(0.8)
	mat.Shininess = 0.2
	if n.AttrOr("sortType", "auto") == "transparent" {
		mat.Transparent = true
	}

	if src := n.Descendant("Material"); src != nil {
		if obj, ok := p.resolveUse(src); ok {
			switch v := obj.(type) {
			case nil:
			case *scene.Material:
				mat.Color = v.Color
				mat.Specular = v.Specular
				mat.Emissive = v.Emissive
				mat.Shininess = v.Shininess
			default:
				label, _ := useOf(src)
				p.report(ErrUnsupportedReuse, src, label, "reference does not name a material")
			}
		} else {
			mat.Color = attrRGB(src, "diffuseColor", mat.Color)
			mat.Specular = attrRGB(src, "specularColor", math.Color{})
			mat.Emissive = attrRGB(src, "emissiveColor", math.Color{})
			mat.Shininess = attrFloat(src, "shininess", 0.2)
			if t := attrFloat(src, "transparency", 0); t > 0 {
				mat.Opacity = 1 - t
				mat.Transparent = true
			}
			p.assign(src, mat)
		}
	}

	transform := n.Descendant("TextureTransform")
	if tex := n.Descendant("ImageTexture"); tex != nil {
		mat.Map = p.decodeImageTexture(tex, transform)
	}
	applyMapTransparency(mat)
	return mat
}

// decodePBRAppearance builds a physically based material. ImageTexture
// descendants bind to channels through their type attribute.
func (p *pass) decodePBRAppearance(n *xmltree.Node) *scene.Material {
	mat := scene.NewMaterial(scene.MaterialPBR)
	mat.Color = attrRGB(n, "baseColor", math.White)
	mat.Roughness = attrFloat(n, "roughness", 0)
	mat.Metalness = attrFloat(n, "metalness", 1)
	mat.Emissive = attrRGB(n, "emissiveColor", math.Color{})
	if t := attrFloat(n, "transparency", 0); t != 0 {
		mat.Opacity = 1 - t
		mat.Transparent = true
	}

	transform := n.Descendant("TextureTransform")
	for _, tex := range n.Descendants("ImageTexture") {
		switch tex.AttrOr("type", "") {
		case "baseColor":
			mat.Map = p.decodeImageTexture(tex, transform)
		case "roughness":
			mat.RoughnessMap = p.decodeImageTexture(tex, transform)
			mat.Roughness = 1
		case "metalness":
			mat.MetalnessMap = p.decodeImageTexture(tex, transform)
		case "normal":
			mat.NormalMap = p.decodeImageTexture(tex, transform)
		case "emissiveColor":
			mat.EmissiveMap = p.decodeImageTexture(tex, transform)
			mat.Emissive = math.White
		}
	}
	applyMapTransparency(mat)
	return mat
}

// applyMapTransparency forces blending and the alpha cutoff when the color
// map is alpha-transparent.
func applyMapTransparency(mat *scene.Material) {
	mat.HasTransparentTexture = mat.Map != nil && mat.Map.Transparent
	if mat.HasTransparentTexture {
		mat.Transparent = true
		mat.AlphaTest = scene.AlphaTestCutoff
	}
}
