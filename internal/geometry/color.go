package geometry

import (
	"fmt"
	"image/color"
	"math/rand"
	"strconv"
	"strings"
)

// RandomColor returns a random "#RRGGBB" fill.
func RandomColor() string {
	return fmt.Sprintf("#%06X", rand.Intn(0x1000000))
}

// ParseHexColor accepts "#RGB", "#RRGGBB" and "#RRGGBBAA".
func ParseHexColor(s string) (color.RGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 6 {
		v += "ff"
	}
	if len(v) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
