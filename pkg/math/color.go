package math

// Color is a linear RGB color with channels nominally in [0, 1].
type Color struct {
	R, G, B float32
}

// White is the default light and material color.
var White = Color{1, 1, 1}

// Gray returns a color with all channels set to v.
func Gray(v float32) Color {
	return Color{v, v, v}
}

// Hex packs the color into a 0xRRGGBB integer, clamping each channel.
func (c Color) Hex() uint32 {
	return uint32(channel(c.R))<<16 | uint32(channel(c.G))<<8 | uint32(channel(c.B))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
