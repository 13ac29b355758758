package x3d

import (
	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/scene"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// decodeViewpoint updates the host camera. The field of view is converted to
// degrees and halved.
func (p *pass) decodeViewpoint(n *xmltree.Node) {
	cam := &p.host.Camera
	cam.FOV = math.RadToDeg(attrFloat(n, "fieldOfView", 0.785)) * 0.5
	cam.Near = attrFloat(n, "zNear", 0.1)
	cam.Far = attrFloat(n, "zFar", 2000)
	if n.Has("position") {
		pos := attrVec3(n, "position", math.Vec3{Z: 10})
		cam.Position = &pos
	}
	if n.Has("orientation") {
		rot := attrRotation(n, "orientation")
		cam.Orientation = &rot
	}
	cam.FollowedID = attrString(n, "followedId", "")
	cam.FollowSmoothness = attrFloat(n, "followSmoothness", 0)
}

// ambientCubeMap is the ambient light level used with a cube-map background.
const ambientCubeMap = 0x40 / 255.0

// decodeBackground sets the host background and adds an ambient light.
func (p *pass) decodeBackground(n *xmltree.Node) {
	bg := &scene.Background{SkyColor: attrRGB(n, "skyColor", math.Color{})}
	if hdr, ok := n.Attr("hdrUrl"); ok {
		bg.HDRURL = firstURL(hdr)
		if bg.HDRURL == "" {
			bg.HDRURL = hdr
		}
	} else {
		for i, name := range scene.CubeFaceNames {
			if v, ok := n.Attr(name); ok {
				if url := firstURL(v); url != "" {
					bg.CubeMap[i] = p.texture(url)
				}
			}
		}
	}
	p.host.Background = bg

	ambient := &scene.Light{Kind: scene.LightAmbient, Intensity: 1, Color: bg.SkyColor}
	if bg.HasCubeMap() {
		ambient.Color = math.Gray(ambientCubeMap)
	}
	p.host.Ambient = append(p.host.Ambient, ambient)
}

// decodeFog sets the host fog. The misspelt forType attribute is accepted
// for older exports.
func (p *pass) decodeFog(n *xmltree.Node) {
	color := attrRGB(n, "color", math.White)
	visibility := attrFloat(n, "visibilityRange", 0)
	kind := n.AttrOr("fogType", n.AttrOr("forType", "LINEAR"))

	if kind == "LINEAR" {
		p.host.Fog = &scene.Fog{Kind: scene.FogLinear, Color: color, Near: 0.001, Far: visibility}
		return
	}
	fog := &scene.Fog{Kind: scene.FogExponential, Color: color}
	if visibility != 0 {
		fog.Density = 1 / visibility
	}
	p.host.Fog = fog
}

func (p *pass) decodeWorldInfo(n *xmltree.Node) {
	p.host.World = scene.WorldInfo{
		Title:  attrString(n, "title", ""),
		Window: attrString(n, "window", ""),
	}
}
