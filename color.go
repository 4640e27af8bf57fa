package dompdf

import (
	"strconv"
	"strings"

	"github.com/tinywasm/fmt"
)

// Color is an RGB color with components in 0..1. Alpha is the opacity in
// 0..1; an Alpha of 0 is read as opaque so that a Color literal without
// Alpha draws normally.
type Color struct {
	R, G, B float64
	Alpha   float64
}

// Black is the default drawing color.
var Black = Color{Alpha: 1}

// RGB returns an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, Alpha: 1}
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errf("invalid color \"%s\"", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errf("invalid color \"%s\"", s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	c := RGB(uint8(v>>24), uint8(v>>16), uint8(v>>8))
	c.Alpha = float64(uint8(v)) / 255
	return c, nil
}

// rgb255 returns the components scaled to 0..255.
func (c Color) rgb255() (int, int, int) {
	return to255(c.R), to255(c.G), to255(c.B)
}

func to255(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v*255 + 0.5)
}

// opacity returns Alpha clamped to 0..1, with 0 read as 1.
func (c Color) opacity() float64 {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return 1
	}
	return c.Alpha
}
