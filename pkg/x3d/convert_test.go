package x3d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/xmltree"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in   string
		want math.Vec3
	}{
		{" 1 2 3 ", math.Vec3{X: 1, Y: 2, Z: 3}},
		{"1,2,3", math.Vec3{X: 1, Y: 2, Z: 3}},
		{"1\t2\n3", math.Vec3{X: 1, Y: 2, Z: 3}},
		{"1 2", math.Vec3{X: 1, Y: 2}},
		{"", math.Vec3{}},
		{"a 2 b", math.Vec3{Y: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseVec3(tt.in), "ParseVec3(%q)", tt.in)
	}
}

func TestParseVec2(t *testing.T) {
	assert.Equal(t, math.Vec2{X: 1, Y: 2}, ParseVec2("1,2"))
	assert.Equal(t, math.Vec2{X: 1.5, Y: -2}, ParseVec2(" 1.5 -2"))
}

func TestParseRGB(t *testing.T) {
	c := ParseRGB("0.5 0.5 0.5")
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.Equal(t, float32(0.5), c.R)
}

func TestParseRotation(t *testing.T) {
	q := ParseRotation("0 1 0 0")
	assert.Equal(t, math.QuatIdentity(), q)

	q = ParseRotation("0 1 0 1.5707964")
	v := q.Rotate(math.Vec3{X: 1})
	assert.InDelta(t, 0, v.X, 1e-5)
	assert.InDelta(t, -1, v.Z, 1e-5)

	assert.Equal(t, math.QuatIdentity(), ParseRotation("0 0 0 2"), "zero axis")
}

func TestParseInts(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, -1, 3, -1, 4}, ParseInts("0 1,2 -1 3.0 x 4"))
	assert.Empty(t, ParseInts("  "))
}

func TestParseFloats(t *testing.T) {
	assert.Equal(t, []float32{1, 0, 2.5}, ParseFloats("1 nope 2.5"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("true"))
	assert.True(t, ParseBool(" TRUE "))
	assert.False(t, ParseBool("false"))
	assert.False(t, ParseBool("yes"))
}

func TestFirstURL(t *testing.T) {
	tests := map[string]string{
		`"a.png" "b.png"`:  "a.png",
		`'textures/c.jpg'`: "textures/c.jpg",
		`d.png`:            "d.png",
		`""`:               "",
		``:                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, firstURL(in), "firstURL(%q)", in)
	}
}

func TestAttributeDefaults(t *testing.T) {
	doc, err := xmltree.ParseString(`<Transform translation="1 2 3" solid="TRUE" bad="x"/>`)
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Roots[0]

	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, attrVec3(n, "translation", math.Vec3{}))
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, attrVec3(n, "scale", math.Vec3{X: 1, Y: 1, Z: 1}))
	assert.Equal(t, math.QuatIdentity(), attrRotation(n, "rotation"))
	assert.Equal(t, math.Gray(0.8), attrRGB(n, "diffuseColor", math.Gray(0.8)))
	assert.Equal(t, float32(7), attrFloat(n, "bad", 7))
	assert.Equal(t, 3, attrInt(n, "bad", 3))
	assert.True(t, attrBool(n, "solid", false))
	assert.True(t, attrBool(n, "on", true))
	assert.Nil(t, attrFloats(n, "point"))
}

func TestLabelsOf(t *testing.T) {
	doc, err := xmltree.ParseString(`<r><a id="x" DEF="y"/><b id="z" DEF="z"/><c/></r>`)
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Roots[0].Children
	assert.Equal(t, []string{"x", "y"}, labelsOf(c[0]))
	assert.Equal(t, []string{"z"}, labelsOf(c[1]))
	assert.Empty(t, labelsOf(c[2]))
}
