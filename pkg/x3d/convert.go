package x3d

import (
	"strconv"
	"strings"

	"github.com/Faultbox/x3dscene/pkg/math"
)

// fields splits on whitespace and commas.
func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return true
		}
		return false
	})
}

func parseFloat(s string) (float32, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

// ParseFloats parses every number in s. Tokens that are not numbers read as 0
// so positions in the array are preserved.
func ParseFloats(s string) []float32 {
	toks := fields(s)
	out := make([]float32, len(toks))
	for i, t := range toks {
		out[i], _ = parseFloat(t)
	}
	return out
}

// ParseInts parses an index list. Tokens that are not integers read as -1,
// which every index consumer treats as a separator.
func ParseInts(s string) []int {
	toks := fields(s)
	out := make([]int, len(toks))
	for i, t := range toks {
		v, err := strconv.Atoi(t)
		if err != nil {
			if f, ok := parseFloat(t); ok {
				v = int(f)
			} else {
				v = -1
			}
		}
		out[i] = v
	}
	return out
}

// components parses up to n numbers from s, taking missing or malformed
// components from def.
func components(s string, def []float32) []float32 {
	out := make([]float32, len(def))
	copy(out, def)
	for i, t := range fields(s) {
		if i >= len(out) {
			break
		}
		if v, ok := parseFloat(t); ok {
			out[i] = v
		}
	}
	return out
}

// ParseVec2 parses "x y" or "x,y".
func ParseVec2(s string) math.Vec2 {
	c := components(s, []float32{0, 0})
	return math.Vec2{X: c[0], Y: c[1]}
}

// ParseVec3 parses "x y z".
func ParseVec3(s string) math.Vec3 {
	c := components(s, []float32{0, 0, 0})
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// ParseRotation parses an "x y z angle" axis-angle rotation.
func ParseRotation(s string) math.Quat {
	c := components(s, []float32{0, 1, 0, 0})
	return math.QuatFromAxisAngle(math.Vec3{X: c[0], Y: c[1], Z: c[2]}, c[3])
}

// ParseRGB parses "r g b".
func ParseRGB(s string) math.Color {
	c := components(s, []float32{0, 0, 0})
	return math.Color{R: c[0], G: c[1], B: c[2]}
}

// ParseBool reports whether s is "true", ignoring case and surrounding space.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// firstURL returns the first token of an MFString url list such as
// `"a.png" "b.png"`, or "" when the list is empty.
func firstURL(s string) string {
	toks := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\'', '"', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
	if len(toks) == 0 {
		return ""
	}
	return toks[0]
}
