package scene

import "github.com/Faultbox/x3dscene/pkg/math"

// Shadow holds shadow-map projection parameters.
type Shadow struct {
	MapSize int
	Radius  float32
	Bias    float32
	Near    float32
	Far     float32
	// Camera bounds for directional lights, set by FrameDirectionalLights.
	Left, Right, Bottom, Top float32
}

// Light is a light source. Its position lives on the owning node.
type Light struct {
	Kind      LightKind
	Color     math.Color
	Intensity float32
	// Direction is the emission direction of directional and spot lights.
	Direction math.Vec3
	Decay     float32
	Distance  float32
	Angle     float32
	Penumbra  float32
	// Target is the point a spot light aims at, in the parent's space.
	Target math.Vec3
	// Shadow is nil when the light casts no shadows.
	Shadow *Shadow
}

// CastsShadow reports whether shadow parameters are attached.
func (l *Light) CastsShadow() bool {
	return l != nil && l.Shadow != nil
}

// Clone returns an independent copy, or nil for a nil light.
func (l *Light) Clone() *Light {
	if l == nil {
		return nil
	}
	c := *l
	if l.Shadow != nil {
		s := *l.Shadow
		c.Shadow = &s
	}
	return &c
}
