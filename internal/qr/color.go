package qr

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB value.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// namedColors covers the basic CSS color keywords.
var namedColors = map[string]Color{
	"black":     {0, 0, 0},
	"white":     {255, 255, 255},
	"red":       {255, 0, 0},
	"lime":      {0, 255, 0},
	"green":     {0, 128, 0},
	"blue":      {0, 0, 255},
	"yellow":    {255, 255, 0},
	"cyan":      {0, 255, 255},
	"aqua":      {0, 255, 255},
	"magenta":   {255, 0, 255},
	"fuchsia":   {255, 0, 255},
	"gray":      {128, 128, 128},
	"grey":      {128, 128, 128},
	"silver":    {192, 192, 192},
	"gainsboro": {220, 220, 220},
	"maroon":    {128, 0, 0},
	"olive":     {128, 128, 0},
	"navy":      {0, 0, 128},
	"teal":      {0, 128, 128},
	"purple":    {128, 0, 128},
	"orange":    {255, 165, 0},
	"pink":      {255, 192, 203},
	"brown":     {165, 42, 42},
}

// ParseColor parses #rgb, #rrggbb, rrggbb, rgb(r,g,b) or a basic CSS color name.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Color{}, fmt.Errorf("%w: empty color", ErrInvalidOption)
	}

	if c, ok := namedColors[v]; ok {
		return c, nil
	}

	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("%w: invalid color %q", ErrInvalidOption, s)
		}
		var ch [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: invalid color %q", ErrInvalidOption, s)
			}
			ch[i] = uint8(n)
		}
		return Color{ch[0], ch[1], ch[2]}, nil
	}

	hex := strings.TrimPrefix(v, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: invalid color %q", ErrInvalidOption, s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: invalid color %q", ErrInvalidOption, s)
	}
	return Color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

// ParseOptionalColor is ParseColor that maps "" and "none" to nil.
func ParseOptionalColor(s string) (*Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "none" {
		return nil, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LerpColor interpolates each channel linearly; t is clamped to [0, 1].
func LerpColor(a, b Color, t float64) Color {
	t = clamp(t, 0, 1)
	return Color{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// hsv converts h, s, v in [0, 1] to a Color, truncating each channel.
func hsv(h, s, v float64) Color {
	if s == 0 {
		return Color{uint8(v * 255), uint8(v * 255), uint8(v * 255)}
	}
	h = h - math.Floor(h)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

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
	return Color{uint8(r * 255), uint8(g * 255), uint8(b * 255)}
}

// RelativeLuminance follows the WCAG 2.0 definition.
func RelativeLuminance(c Color) float64 {
	ch := func(u uint8) float64 {
		v := float64(u) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*ch(c.R) + 0.7152*ch(c.G) + 0.0722*ch(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1, 21].
func ContrastRatio(a, b Color) float64 {
	l1, l2 := RelativeLuminance(a), RelativeLuminance(b)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
