package x3d

import (
	"strconv"
	"strings"

	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

// Typed attribute accessors. An absent attribute always yields def.

func attrString(n *xmltree.Node, name, def string) string {
	return n.AttrOr(name, def)
}

func attrFloat(n *xmltree.Node, name string, def float32) float32 {
	s, ok := n.Attr(name)
	if !ok {
		return def
	}
	if v, ok := parseFloat(s); ok {
		return v
	}
	return def
}

func attrInt(n *xmltree.Node, name string, def int) int {
	s, ok := n.Attr(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func attrBool(n *xmltree.Node, name string, def bool) bool {
	s, ok := n.Attr(name)
	if !ok {
		return def
	}
	return ParseBool(s)
}

func attrVec2(n *xmltree.Node, name string, def math.Vec2) math.Vec2 {
	s, ok := n.Attr(name)
	if !ok {
		return def
	}
	c := components(s, []float32{def.X, def.Y})
	return math.Vec2{X: c[0], Y: c[1]}
}

func attrVec3(n *xmltree.Node, name string, def math.Vec3) math.Vec3 {
	s, ok := n.Attr(name)
	if !ok {
		return def
	}
	c := components(s, []float32{def.X, def.Y, def.Z})
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

func attrRGB(n *xmltree.Node, name string, def math.Color) math.Color {
	s, ok := n.Attr(name)
	if !ok {
		return def
	}
	c := components(s, []float32{def.R, def.G, def.B})
	return math.Color{R: c[0], G: c[1], B: c[2]}
}

func attrRotation(n *xmltree.Node, name string) math.Quat {
	s, ok := n.Attr(name)
	if !ok {
		return math.QuatIdentity()
	}
	return ParseRotation(s)
}

func attrFloats(n *xmltree.Node, name string) []float32 {
	s, ok := n.Attr(name)
	if !ok {
		return nil
	}
	return ParseFloats(s)
}

func attrInts(n *xmltree.Node, name string) []int {
	s, ok := n.Attr(name)
	if !ok {
		return nil
	}
	return ParseInts(s)
}

// labelsOf returns the identity labels declared on n.
func labelsOf(n *xmltree.Node) []string {
	var out []string
	for _, name := range []string{"id", "DEF"} {
		if v, ok := n.Attr(name); ok && v != "" && (len(out) == 0 || out[0] != v) {
			out = append(out, v)
		}
	}
	return out
}

func useOf(n *xmltree.Node) (string, bool) {
	v, ok := n.Attr("USE")
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
