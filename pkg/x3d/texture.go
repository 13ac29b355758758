package x3d

import (
	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// decodeImageTexture returns the texture for n, or nil when n has no URL.
// A USE reference returns the referenced texture itself.
func (p *pass) decodeImageTexture(n, transform *xmltree.Node) *scene.Texture {
	if obj, ok := p.resolveUse(n); ok {
		tex, isTex := obj.(*scene.Texture)
		if obj != nil && !isTex {
			label, _ := useOf(n)
			p.report(ErrUnsupportedReuse, n, label, "reference does not name a texture")
		}
		return tex
	}

	url := firstURL(n.AttrOr("url", ""))
	if url == "" {
		return nil
	}
	tex := &scene.Texture{
		URL:         url,
		Image:       p.texture(url),
		Transparent: attrBool(n, "isTransparent", false),
		WrapS:       wrap(attrBool(n, "repeatS", true)),
		WrapT:       wrap(attrBool(n, "repeatT", true)),
	}

	if transform != nil {
		if obj, ok := p.resolveUse(transform); ok {
			if src, isTex := obj.(*scene.Texture); isTex && src.Transform != nil {
				t := *src.Transform
				tex.Transform = &t
			} else if obj != nil {
				label, _ := useOf(transform)
				p.report(ErrUnsupportedReuse, transform, label, "reference does not carry a texture transform")
			}
		} else {
			tex.Transform = scene.NewUVTransform(
				attrVec2(transform, "center", math.Vec2{}),
				attrFloat(transform, "rotation", 0),
				attrVec2(transform, "scale", math.Vec2{X: 1, Y: 1}),
				attrVec2(transform, "translation", math.Vec2{}),
			)
		}
		p.assign(transform, tex)
	}

	p.assign(n, tex)
	return tex
}

func wrap(repeat bool) scene.Wrap {
	if repeat {
		return scene.WrapRepeat
	}
	return scene.WrapClamp
}
