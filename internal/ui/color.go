package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/util"
)

type colorRGB struct {
	R uint8
	G uint8
	B uint8
}

// backdrop is what a fully faded element blends into.
var backdrop = colorRGB{R: 24, G: 24, B: 28}

var sectionColors = map[string]string{
	content.Hero:     "#FF8C00",
	content.About:    "#61DAFB",
	content.Skills:   "#68A063",
	content.Projects: "#CC6699",
	content.Contact:  "#F7DF1E",
}

func sectionColor(id string) string {
	if c, ok := sectionColors[id]; ok {
		return c
	}
	return "#AAAAAA"
}

func parseHex(s string) colorRGB {
	if len(s) != 7 || s[0] != '#' {
		return colorRGB{R: 200, G: 200, B: 200}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return colorRGB{R: 200, G: 200, B: 200}
	}
	return colorRGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c colorRGB) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c colorRGB) color() lipgloss.Color { return lipgloss.Color(c.hex()) }

func lerpColor(a, b colorRGB, t float64) colorRGB {
	t = util.Clamp01(t)
	return colorRGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// fade blends hex toward the backdrop; opacity 1 is the color itself.
func fade(hex string, opacity float64) lipgloss.Color {
	return lerpColor(backdrop, parseHex(hex), opacity).color()
}

func rgbFromHSV(h, s, v float64) colorRGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	s = util.Clamp01(s)
	v = util.Clamp01(v)

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return colorRGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}
