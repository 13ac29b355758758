package scene

import "github.com/Faultbox/x3dscene/pkg/math"

// Camera is the viewpoint slot of the host container.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32
	// Position and Orientation are nil until a viewpoint declares them.
	Position    *math.Vec3
	Orientation *math.Quat

	FollowedID       string
	FollowSmoothness float32
}

// DefaultCamera returns the camera used before any viewpoint is decoded.
func DefaultCamera() Camera {
	return Camera{FOV: 22.5, Near: 0.1, Far: 2000}
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c Camera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// View returns the inverse of the camera's placement.
func (c Camera) View() math.Mat4 {
	pos := math.Vec3{}
	rot := math.QuatIdentity()
	if c.Position != nil {
		pos = *c.Position
	}
	if c.Orientation != nil {
		rot = *c.Orientation
	}
	return math.Compose(pos, rot, math.Vec3{X: 1, Y: 1, Z: 1}).InverseAffine()
}

// Background is the background slot.
type Background struct {
	SkyColor math.Color
	// HDRURL is set when an HDR cube map was requested; its faces are left empty.
	HDRURL string
	// CubeMap faces in left, right, top, bottom, back, front order. Faces
	// without a URL stay nil.
	CubeMap [6]*ImageCell
}

// CubeFaceNames lists the background attributes in cube-map order.
var CubeFaceNames = [6]string{"leftUrl", "rightUrl", "topUrl", "bottomUrl", "backUrl", "frontUrl"}

// HasCubeMap reports whether a cube map replaces the sky color.
func (b *Background) HasCubeMap() bool {
	if b.HDRURL != "" {
		return true
	}
	for _, f := range b.CubeMap {
		if f != nil {
			return true
		}
	}
	return false
}

// CubeMapReady reports whether every declared face has an image.
func (b *Background) CubeMapReady() bool {
	for _, f := range b.CubeMap {
		if f == nil {
			continue
		}
		if _, ok := f.Image(); !ok {
			return false
		}
	}
	return true
}

// Fog is the fog slot.
type Fog struct {
	Kind    FogKind
	Color   math.Color
	Near    float32
	Far     float32
	Density float32
}

// WorldInfo is the world-metadata slot.
type WorldInfo struct {
	Title  string
	Window string
}

// Container is the host scene the decoder writes its singleton slots into.
// Root is searched when a reuse reference is not found in the current pass.
type Container struct {
	Camera     Camera
	Background *Background
	Ambient    []*Light
	Fog        *Fog
	World      WorldInfo
	Root       *Node
}

// NewContainer returns a container with a default camera and an empty root.
func NewContainer() *Container {
	return &Container{
		Camera: DefaultCamera(),
		Root:   NewNode(KindGroup),
	}
}

// Attach adds decoded roots under Root so later decodes can reuse them.
func (c *Container) Attach(roots ...*Node) {
	if c.Root == nil {
		c.Root = NewNode(KindGroup)
	}
	for _, r := range roots {
		c.Root.Add(r)
	}
}
