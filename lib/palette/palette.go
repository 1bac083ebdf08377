// Package palette holds Bang Wong's colour-blind-friendly palette, used
// for every chart so that the same colour means the same thing across
// publications.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type Color string

const (
	Black     Color = "#000000"
	Orange    Color = "#E69F00"
	LightBlue Color = "#56B4E9"
	Green     Color = "#009E73"
	Yellow    Color = "#F0E442"
	Blue      Color = "#0072B2"
	RedOrange Color = "#D55E00"
	Pink      Color = "#CC79A7"
)

var names = map[Color]string{
	Black:     "black",
	Orange:    "orange",
	LightBlue: "light blue",
	Green:     "green",
	Yellow:    "yellow",
	Blue:      "blue",
	RedOrange: "red orange",
	Pink:      "pink",
}

// All returns the palette in its canonical order.
func All() []Color {
	return []Color{Black, Orange, LightBlue, Green, Yellow, Blue, RedOrange, Pink}
}

func (c Color) Name() string {
	name, ok := names[c]
	if !ok {
		return string(c)
	}
	return name
}

func (c Color) Hex() string {
	return string(c)
}

// RGBA never fails for palette members, colours that do not parse
// come back as opaque black.
func (c Color) RGBA() color.NRGBA {
	rgba, err := Parse(string(c))
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return rgba
}

// WithAlpha returns the colour with an opacity between 0 and 1.
func (c Color) WithAlpha(alpha float64) color.NRGBA {
	rgba := c.RGBA()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	rgba.A = uint8(alpha*255 + 0.5)
	return rgba
}

// Parse reads "#rrggbb" or "#rgb" hex colours.
func Parse(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
