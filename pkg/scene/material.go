package scene

import "github.com/Faultbox/x3dscene/pkg/math"

// AlphaTestCutoff is the alpha cutoff hint applied for alpha-transparent
// textures.
const AlphaTestCutoff = 0.5

// Material holds shading parameters. Which fields are meaningful depends on
// Kind: Phong uses Specular and Shininess, PBR uses Roughness, Metalness and
// the extra maps, Points uses PointSize.
type Material struct {
	Labels
	Kind MaterialKind

	Color     math.Color
	Specular  math.Color
	Emissive  math.Color
	Shininess float32
	Roughness float32
	Metalness float32

	Opacity     float32
	Transparent bool
	AlphaTest   float32
	// HasTransparentTexture is set when the color map declares alpha.
	HasTransparentTexture bool

	Map          *Texture
	RoughnessMap *Texture
	MetalnessMap *Texture
	NormalMap    *Texture
	EmissiveMap  *Texture

	PointSize       float32
	SizeAttenuation bool
	VertexColors    bool
}

// NewMaterial returns an opaque white material of the given kind.
func NewMaterial(kind MaterialKind) *Material {
	return &Material{
		Kind:    kind,
		Color:   math.White,
		Opacity: 1,
	}
}

// Textures returns the non-nil texture maps.
func (m *Material) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.Map, m.RoughnessMap, m.MetalnessMap, m.NormalMap, m.EmissiveMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Opaque reports whether the material neither blends nor uses an
// alpha-transparent color map.
func (m *Material) Opaque() bool {
	return !m.Transparent && !m.HasTransparentTexture
}
