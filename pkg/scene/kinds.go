package scene

// NodeKind identifies what produced a Node.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindTransform
	KindSwitch
	KindShape
	KindLight
	KindLightTarget
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindTransform:
		return "Transform"
	case KindSwitch:
		return "Switch"
	case KindShape:
		return "Shape"
	case KindLight:
		return "Light"
	case KindLightTarget:
		return "LightTarget"
	default:
		return "Unknown"
	}
}

// GeometryKind is the source primitive of a Geometry.
type GeometryKind int

const (
	GeometryUnknown GeometryKind = iota
	GeometryBox
	GeometrySphere
	GeometryCone
	GeometryCylinder
	GeometryPlane
	GeometryElevationGrid
	GeometryIndexedFaceSet
	GeometryIndexedLineSet
	GeometryPointSet
)

var geometryKindNames = [...]string{
	GeometryUnknown:        "Unknown",
	GeometryBox:            "Box",
	GeometrySphere:         "Sphere",
	GeometryCone:           "Cone",
	GeometryCylinder:       "Cylinder",
	GeometryPlane:          "Plane",
	GeometryElevationGrid:  "ElevationGrid",
	GeometryIndexedFaceSet: "IndexedFaceSet",
	GeometryIndexedLineSet: "IndexedLineSet",
	GeometryPointSet:       "PointSet",
}

func (k GeometryKind) String() string {
	if k < 0 || int(k) >= len(geometryKindNames) {
		return "Unknown"
	}
	return geometryKindNames[k]
}

// ParseGeometryKind maps a primitive element name to its kind.
func ParseGeometryKind(name string) (GeometryKind, bool) {
	for i, n := range geometryKindNames {
		if n == name && GeometryKind(i) != GeometryUnknown {
			return GeometryKind(i), true
		}
	}
	return GeometryUnknown, false
}

// RenderMode is derived from the geometry kind of a shape.
type RenderMode int

const (
	RenderTriangles RenderMode = iota
	RenderLineSegments
	RenderPoints
)

func (m RenderMode) String() string {
	switch m {
	case RenderTriangles:
		return "mesh"
	case RenderLineSegments:
		return "lines"
	case RenderPoints:
		return "points"
	default:
		return "unknown"
	}
}

// RenderModeFor returns the render mode for geometry of kind k.
func RenderModeFor(k GeometryKind) RenderMode {
	switch k {
	case GeometryIndexedLineSet:
		return RenderLineSegments
	case GeometryPointSet:
		return RenderPoints
	default:
		return RenderTriangles
	}
}

// MaterialKind selects the shading model.
type MaterialKind int

const (
	MaterialBasic MaterialKind = iota
	MaterialPhong
	MaterialPBR
	MaterialPoints
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialBasic:
		return "Basic"
	case MaterialPhong:
		return "Phong"
	case MaterialPBR:
		return "PBR"
	case MaterialPoints:
		return "Points"
	default:
		return "Unknown"
	}
}

// LightKind is the light model.
type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
	LightAmbient
)

func (k LightKind) String() string {
	switch k {
	case LightDirectional:
		return "DirectionalLight"
	case LightPoint:
		return "PointLight"
	case LightSpot:
		return "SpotLight"
	case LightAmbient:
		return "AmbientLight"
	default:
		return "Unknown"
	}
}

// Wrap is a texture addressing mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

func (w Wrap) String() string {
	if w == WrapClamp {
		return "clamp"
	}
	return "repeat"
}

// FogKind selects the fog falloff.
type FogKind int

const (
	FogLinear FogKind = iota
	FogExponential
)

func (k FogKind) String() string {
	if k == FogExponential {
		return "exponential"
	}
	return "linear"
}
