package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/x3dscene/pkg/math"
)

// Box builds an axis-aligned box centered at the origin. Each face has its own
// four vertices so normals and UVs stay flat per face.
func Box(width, height, depth float32) *Mesh {
	m := New(Triangles)
	// u, v, w axis indices, u/v directions and face size/depth.
	faces := []struct {
		u, v, w      int
		udir, vdir   float32
		fw, fh, fdep float32
	}{
		{2, 1, 0, -1, -1, depth, height, width},  // +x
		{2, 1, 0, 1, -1, depth, height, -width},  // -x
		{0, 2, 1, 1, 1, width, depth, height},    // +y
		{0, 2, 1, 1, -1, width, depth, -height},  // -y
		{0, 1, 2, 1, -1, width, height, depth},   // +z
		{0, 1, 2, -1, -1, width, height, -depth}, // -z
	}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		var normal [3]float32
		if f.fdep > 0 {
			normal[f.w] = 1
		} else {
			normal[f.w] = -1
		}
		for iy := 0; iy < 2; iy++ {
			y := float32(iy)*f.fh - f.fh/2
			for ix := 0; ix < 2; ix++ {
				x := float32(ix)*f.fw - f.fw/2
				var p [3]float32
				p[f.u] = x * f.udir
				p[f.v] = y * f.vdir
				p[f.w] = f.fdep / 2
				m.Positions = append(m.Positions, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
				m.Normals = append(m.Normals, math.Vec3{X: normal[0], Y: normal[1], Z: normal[2]})
				m.UVs = append(m.UVs, math.Vec2{X: float32(ix), Y: 1 - float32(iy)})
			}
		}
		a, b, c, d := base, base+2, base+3, base+1
		m.Indices = append(m.Indices, a, b, d, b, c, d)
	}
	m.ComputeBounds()
	return m
}

// Sphere builds a UV sphere. phiStart rotates the longitudinal seam.
// widthSegments is clamped to at least 3 and heightSegments to at least 2.
func Sphere(radius float32, widthSegments, heightSegments int, phiStart float32) *Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	const phiLength = 2 * math32.Pi
	const thetaLength = math32.Pi

	m := New(Triangles)
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := phiStart + u*phiLength
			theta := v * thetaLength
			p := math.Vec3{
				X: -radius * math32.Cos(phi) * math32.Sin(theta),
				Y: radius * math32.Cos(theta),
				Z: radius * math32.Sin(phi) * math32.Sin(theta),
			}
			row[ix] = uint32(len(m.Positions))
			m.Positions = append(m.Positions, snapVec(p))
			m.Normals = append(m.Normals, p.Normalize())
			m.UVs = append(m.UVs, math.Vec2{X: u, Y: 1 - v})
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// Skip the degenerate triangles at the poles.
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	m.ComputeBounds()
	return m
}

// CylinderOptions configures Cylinder. A cone is a cylinder with a zero top
// radius.
type CylinderOptions struct {
	RadiusTop      float32
	RadiusBottom   float32
	Height         float32
	RadialSegments int
	ThetaStart     float32
	Side           bool
	Top            bool
	Bottom         bool
}

// Cylinder builds a cylinder or cone around the Y axis centered at the origin.
// Caps are only generated for non-zero radii.
func Cylinder(o CylinderOptions) *Mesh {
	segments := max(o.RadialSegments, 3)
	halfHeight := o.Height / 2
	m := New(Triangles)

	if o.Side {
		var slope float32
		if o.Height != 0 {
			slope = (o.RadiusBottom - o.RadiusTop) / o.Height
		}
		var rows [2][]uint32
		for y := 0; y <= 1; y++ {
			v := float32(y)
			radius := v*(o.RadiusBottom-o.RadiusTop) + o.RadiusTop
			for x := 0; x <= segments; x++ {
				u := float32(x) / float32(segments)
				theta := u*2*math32.Pi + o.ThetaStart
				sin, cos := math32.Sin(theta), math32.Cos(theta)
				rows[y] = append(rows[y], uint32(len(m.Positions)))
				m.Positions = append(m.Positions, snapVec(math.Vec3{X: radius * sin, Y: -v*o.Height + halfHeight, Z: radius * cos}))
				m.Normals = append(m.Normals, math.Vec3{X: sin, Y: slope, Z: cos}.Normalize())
				m.UVs = append(m.UVs, math.Vec2{X: u, Y: 1 - v})
			}
		}
		for x := 0; x < segments; x++ {
			a, b := rows[0][x], rows[1][x]
			c, d := rows[1][x+1], rows[0][x+1]
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	if o.Top && o.RadiusTop > 0 {
		cylinderCap(m, o, segments, true)
	}
	if o.Bottom && o.RadiusBottom > 0 {
		cylinderCap(m, o, segments, false)
	}
	m.ComputeBounds()
	return m
}

func cylinderCap(m *Mesh, o CylinderOptions, segments int, top bool) {
	radius, sign := o.RadiusBottom, float32(-1)
	if top {
		radius, sign = o.RadiusTop, 1
	}
	y := o.Height / 2 * sign
	normal := math.Vec3{Y: sign}

	centerStart := uint32(len(m.Positions))
	for x := 1; x <= segments; x++ {
		m.Positions = append(m.Positions, math.Vec3{Y: y})
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, math.Vec2{X: 0.5, Y: 0.5})
	}
	rimStart := uint32(len(m.Positions))
	for x := 0; x <= segments; x++ {
		u := float32(x) / float32(segments)
		theta := u*2*math32.Pi + o.ThetaStart
		sin, cos := math32.Sin(theta), math32.Cos(theta)
		m.Positions = append(m.Positions, snapVec(math.Vec3{X: radius * sin, Y: y, Z: radius * cos}))
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, math.Vec2{X: cos*0.5 + 0.5, Y: sin*0.5*sign + 0.5})
	}
	for x := uint32(0); x < uint32(segments); x++ {
		c := centerStart + x
		i := rimStart + x
		if top {
			m.Indices = append(m.Indices, i, i+1, c)
		} else {
			m.Indices = append(m.Indices, i+1, i, c)
		}
	}
}

// Plane builds a width x height rectangle in the XY plane facing +Z,
// subdivided into gridX x gridY cells. Vertices are laid out row by row from
// the top edge.
func Plane(width, height float32, gridX, gridY int) *Mesh {
	gridX = max(gridX, 1)
	gridY = max(gridY, 1)
	segW := width / float32(gridX)
	segH := height / float32(gridY)

	m := New(Triangles)
	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - width/2
			m.Positions = append(m.Positions, math.Vec3{X: x, Y: -y})
			m.Normals = append(m.Normals, math.Vec3{Z: 1})
			m.UVs = append(m.UVs, math.Vec2{X: float32(ix) / float32(gridX), Y: 1 - float32(iy)/float32(gridY)})
		}
	}
	stride := uint32(gridX + 1)
	for iy := uint32(0); iy < uint32(gridY); iy++ {
		for ix := uint32(0); ix < uint32(gridX); ix++ {
			a := ix + stride*iy
			b := ix + stride*(iy+1)
			c := ix + 1 + stride*(iy+1)
			d := ix + 1 + stride*iy
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	m.ComputeBounds()
	return m
}

// ElevationGrid builds an xDim x zDim height field with its first vertex at
// the origin, spaced by xSpacing and zSpacing. Vertex (x, z) has index
// z*xDim + x and takes heights[z*xDim + x]; vertices past the end of heights
// stay at zero. The V texture axis is negated. Dimensions below 2 yield an
// empty mesh.
func ElevationGrid(xDim, zDim int, xSpacing, zSpacing float32, heights []float32) *Mesh {
	if xDim < 2 || zDim < 2 {
		return New(Triangles)
	}
	width := float32(xDim-1) * xSpacing
	depth := float32(zDim-1) * zSpacing

	m := Plane(width, depth, xDim-1, zDim-1)
	m.RotateX(-math32.Pi / 2)
	m.Translate(math.Vec3{X: width / 2, Z: depth / 2})
	for i := range m.UVs {
		m.UVs[i].Y = -m.UVs[i].Y
	}
	if heights == nil {
		m.ComputeBounds()
		return m
	}
	for i := range m.Positions {
		if i < len(heights) {
			m.Positions[i].Y = heights[i]
		}
	}
	m.ComputeSmoothNormals()
	m.ComputeBounds()
	return m
}
