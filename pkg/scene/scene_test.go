package scene

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/x3dscene/pkg/math"
	"github.com/Faultbox/x3dscene/pkg/mesh"
)

func TestLabels(t *testing.T) {
	var l Labels
	l.Add("a")
	l.Add("b")
	l.Add("a")
	l.Add("")
	l.Merge(Labels{"c", "b"})

	assert.Equal(t, Labels{"a", "b", "c"}, l)
	assert.True(t, l.Has("c"))
	assert.False(t, l.Has("d"))
	assert.Equal(t, "a;b;c", l.String())
}

func TestLabelsWithSeparator(t *testing.T) {
	var l Labels
	l.Add("x;y")
	assert.True(t, l.Has("x;y"))
	assert.False(t, l.Has("x"), "separator is display only")
}

func TestNodeAddReparents(t *testing.T) {
	a, b := NewNode(KindGroup), NewNode(KindGroup)
	child := NewNode(KindShape)
	a.Add(child)
	b.Add(child)
	assert.Empty(t, a.Children)
	assert.Equal(t, []*Node{child}, b.Children)
	assert.Equal(t, b, child.Parent)
}

func TestCloneIndependence(t *testing.T) {
	geom := NewGeometry(GeometryBox, mesh.Box(1, 1, 1))
	mat := NewMaterial(MaterialPhong)

	tmpl := NewNode(KindTransform)
	tmpl.Labels.Add("T")
	tmpl.Position = math.Vec3{X: 1}
	shape := NewNode(KindShape)
	shape.Geometry, shape.Material = geom, mat
	tmpl.Add(shape)
	light := NewNode(KindLight)
	light.Light = &Light{Kind: LightPoint, Intensity: 1, Shadow: &Shadow{MapSize: 512}}
	tmpl.Add(light)
	tmpl.Uses.Add("inst")

	a := tmpl.Clone()
	b := tmpl.Clone()
	a.Position.X = 5
	a.Labels.Add("A")
	a.Children[1].Light.Shadow.MapSize = 1

	assert.Equal(t, float32(1), b.Position.X)
	assert.Equal(t, float32(1), tmpl.Position.X)
	assert.Equal(t, Labels{"T", "A"}, a.Labels)
	assert.Equal(t, Labels{"T"}, b.Labels)
	assert.Equal(t, Labels{"T"}, tmpl.Labels)
	assert.Equal(t, 512, b.Children[1].Light.Shadow.MapSize)
	assert.Empty(t, a.Uses, "instances do not inherit USE sites")
	assert.Equal(t, Labels{"inst"}, tmpl.Uses)

	require.Len(t, a.Children, 2)
	assert.Same(t, geom, a.Children[0].Geometry, "geometry is shared")
	assert.Same(t, mat, a.Children[0].Material, "material is shared")
	assert.Same(t, a, a.Children[0].Parent)
	assert.Nil(t, a.Parent)
}

func TestFindLabeled(t *testing.T) {
	root := NewNode(KindGroup)
	shape := NewNode(KindShape)
	shape.Geometry = Empty()
	shape.Geometry.Labels.Add("g")
	shape.Material = NewMaterial(MaterialPhong)
	shape.Material.Map = &Texture{URL: "a.png"}
	shape.Material.Map.Labels.Add("tex")
	shape.Labels.Add("s")
	root.Add(shape)

	assert.Same(t, shape, root.FindLabeled("s"))
	assert.Same(t, shape.Geometry, root.FindLabeled("g"))
	assert.Same(t, shape.Material.Map, root.FindLabeled("tex"))
	assert.Nil(t, root.FindLabeled("missing"))
}

func TestWorldMatrixAndBounds(t *testing.T) {
	root := NewNode(KindTransform)
	root.Position = math.Vec3{X: 10}
	child := NewNode(KindTransform)
	child.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	root.Add(child)
	shape := NewNode(KindShape)
	shape.Geometry = NewGeometry(GeometryBox, mesh.Box(1, 1, 1))
	child.Add(shape)

	p := shape.WorldMatrix().TransformPoint(math.Vec3{X: 0.5})
	assert.InDelta(t, 11, p.X, 1e-5)

	b := root.WorldBounds()
	assert.InDelta(t, 9, b.Min.X, 1e-5)
	assert.InDelta(t, 11, b.Max.X, 1e-5)

	shape.Visible = false
	assert.True(t, root.WorldBounds().IsEmpty())
}

func TestImageCell(t *testing.T) {
	c := NewImageCell("a.png")
	assert.Equal(t, "a.png", c.Ref())
	assert.False(t, c.Ready())
	_, ok := c.Image()
	assert.False(t, ok)

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.True(t, c.Complete(img, nil))
	assert.False(t, c.Complete(nil, errors.New("late")), "second completion is ignored")

	got, ok := c.Image()
	assert.True(t, ok)
	assert.Same(t, img, got)
	assert.NoError(t, c.Err())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := c.Wait(ctx)
	require.NoError(t, err)
	assert.Same(t, img, got)
}

func TestImageCellFailed(t *testing.T) {
	c := NewImageCell("missing.png")
	boom := errors.New("boom")
	c.Complete(nil, boom)
	_, ok := c.Image()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Err(), boom)
}

func TestImageCellWaitCanceled(t *testing.T) {
	c := NewImageCell("slow.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImageCellConcurrentComplete(t *testing.T) {
	c := NewImageCell("race.png")
	wins := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		go func() { wins <- c.Complete(image.NewGray(image.Rect(0, 0, 1, 1)), nil) }()
	}
	n := 0
	for i := 0; i < 8; i++ {
		if <-wins {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestCameraProjection(t *testing.T) {
	c := DefaultCamera()
	m := c.Projection(0)
	assert.Equal(t, float32(-1), m[11])
	assert.Equal(t, m, c.Projection(1))

	pos := math.Vec3{Z: 10}
	c.Position = &pos
	p := c.View().TransformPoint(math.Vec3{})
	assert.InDelta(t, -10, p.Z, 1e-5)
}

func TestRenderModeFor(t *testing.T) {
	assert.Equal(t, RenderLineSegments, RenderModeFor(GeometryIndexedLineSet))
	assert.Equal(t, RenderPoints, RenderModeFor(GeometryPointSet))
	assert.Equal(t, RenderTriangles, RenderModeFor(GeometryIndexedFaceSet))
	assert.Equal(t, RenderTriangles, RenderModeFor(GeometryUnknown))
}

func TestParseGeometryKind(t *testing.T) {
	k, ok := ParseGeometryKind("ElevationGrid")
	assert.True(t, ok)
	assert.Equal(t, GeometryElevationGrid, k)
	assert.Equal(t, "ElevationGrid", k.String())

	_, ok = ParseGeometryKind("Unknown")
	assert.False(t, ok)
	_, ok = ParseGeometryKind("Teapot")
	assert.False(t, ok)
}

func TestFrameDirectionalLights(t *testing.T) {
	root := NewNode(KindGroup)
	shape := NewNode(KindShape)
	shape.Geometry = NewGeometry(GeometryBox, mesh.Box(2, 2, 2))
	root.Add(shape)

	sun := NewNode(KindLight)
	sun.Light = &Light{Kind: LightDirectional, Direction: math.Vec3{Y: -1}, Shadow: &Shadow{Near: 0.001}}
	root.Add(sun)
	point := NewNode(KindLight)
	point.Light = &Light{Kind: LightPoint}
	point.Position = math.Vec3{X: 3}
	root.Add(point)

	sphere := FrameDirectionalLights([]*Node{sun, point}, root)
	r := float32(1.7320508)
	assert.InDelta(t, r, sphere.Radius, 1e-5)
	assert.InDelta(t, 2*r, sun.Position.Y, 1e-4)
	assert.Equal(t, float32(3), point.Position.X, "non-directional lights stay put")
	assert.InDelta(t, -r, sun.Light.Shadow.Left, 1e-5)
	assert.InDelta(t, 3*r, sun.Light.Shadow.Far, 1e-4)

	m := ShadowMatrix(sun)
	c := m.TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, c.X, 1e-4)
	assert.InDelta(t, 0, c.Y, 1e-4)
	assert.Equal(t, math.Identity(), ShadowMatrix(point))
}

func TestContainerAttach(t *testing.T) {
	c := NewContainer()
	n := NewNode(KindShape)
	n.Labels.Add("x")
	c.Attach(n)
	assert.Same(t, n, c.Root.FindLabeled("x"))
}
