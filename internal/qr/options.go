package qr

import (
	"fmt"
	"math"
	"strings"
)

// Style selects the module geometry.
type Style int

const (
	StyleSquares Style = iota
	StyleCircles
	StyleRounded
	StyleContinuous
	StyleBarsHorizontal
	StyleBarsVertical
)

var styleNames = map[Style]string{
	StyleSquares:        "squares",
	StyleCircles:        "circles",
	StyleRounded:        "rounded",
	StyleContinuous:     "continuous",
	StyleBarsHorizontal: "bars-horizontal",
	StyleBarsVertical:   "bars-vertical",
}

var styleAliases = map[string]Style{
	"squares":            StyleSquares,
	"square":             StyleSquares,
	"circles":            StyleCircles,
	"dots":               StyleCircles,
	"dot":                StyleCircles,
	"rounded":            StyleRounded,
	"continuous":         StyleContinuous,
	"bars-horizontal":    StyleBarsHorizontal,
	"bars-h":             StyleBarsHorizontal,
	"rounded-continuous": StyleBarsHorizontal,
	"bars-vertical":      StyleBarsVertical,
	"bars-v":             StyleBarsVertical,
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// IsBar reports whether the style merges runs of modules into bars.
func (s Style) IsBar() bool {
	return s == StyleBarsHorizontal || s == StyleBarsVertical
}

// ParseStyle resolves a style name or alias. An empty name means squares.
func ParseStyle(name string) (Style, error) {
	v := strings.ToLower(strings.TrimSpace(name))
	if v == "" {
		return StyleSquares, nil
	}
	s, ok := styleAliases[v]
	if !ok {
		return 0, fmt.Errorf("%w: unknown style %q", ErrInvalidOption, name)
	}
	return s, nil
}

// Gradient selects how the foreground color varies across the image.
type Gradient int

const (
	GradientNone Gradient = iota
	GradientHorizontal
	GradientVertical
	GradientDiagonal
	GradientRainbow
)

var gradientNames = map[Gradient]string{
	GradientNone:       "none",
	GradientHorizontal: "horizontal",
	GradientVertical:   "vertical",
	GradientDiagonal:   "diagonal",
	GradientRainbow:    "rainbow",
}

var gradientAliases = map[string]Gradient{
	"none":       GradientNone,
	"flat":       GradientNone,
	"horizontal": GradientHorizontal,
	"h":          GradientHorizontal,
	"vertical":   GradientVertical,
	"v":          GradientVertical,
	"diagonal":   GradientDiagonal,
	"diag":       GradientDiagonal,
	"rainbow":    GradientRainbow,
}

func (g Gradient) String() string {
	if n, ok := gradientNames[g]; ok {
		return n
	}
	return fmt.Sprintf("Gradient(%d)", int(g))
}

// ParseGradient resolves a gradient name or alias. An empty name means none.
func ParseGradient(name string) (Gradient, error) {
	v := strings.ToLower(strings.TrimSpace(name))
	if v == "" {
		return GradientNone, nil
	}
	g, ok := gradientAliases[v]
	if !ok {
		return 0, fmt.Errorf("%w: unknown gradient %q", ErrInvalidOption, name)
	}
	return g, nil
}

// Limits applied by Validate.
const (
	MaxSize    = 8192
	MaxPadding = 4096
	MaxRadius  = 0.5

	// MaxCanvasPixels caps the area of any image allocated by Render, Frame
	// or WriteSVG. A MaxPixels option can only lower it.
	MaxCanvasPixels = 8192 * 8192
)

// checkCanvas fails when a w×h canvas is over limit, or over MaxCanvasPixels
// when limit is zero.
func checkCanvas(w, h, limit int) error {
	if limit <= 0 || limit > MaxCanvasPixels {
		limit = MaxCanvasPixels
	}
	if w <= 0 || h <= 0 || w > limit/h {
		return fmt.Errorf("%w: canvas %dx%d exceeds the %d pixel limit", ErrInvalidOption, w, h, limit)
	}
	return nil
}

// RenderOptions configures the module renderer.
type RenderOptions struct {
	// Size is the target edge length in pixels. The grid is fitted inside it
	// using an integer module size, so the output may be slightly smaller.
	Size   int
	Style  Style
	Radius float64 // corner radius as a fraction of the module size

	Foreground Color
	Background Color
	Gradient   Gradient
	Gradient2  *Color // second stop for two-color gradients

	Padding int // extra pixels around the quiet zone

	// Logo is an optional PNG, JPEG or SVG file drawn in the center.
	Logo string

	MaxPixels int // canvas area cap; 0 means MaxCanvasPixels
}

// DefaultRenderOptions returns black squares on white at 1024px.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Size:       1024,
		Style:      StyleSquares,
		Radius:     0.3,
		Foreground: Black,
		Background: White,
		Gradient:   GradientNone,
	}
}

// Validate rejects options the renderer cannot honor.
func (o RenderOptions) Validate() error {
	if o.Size <= 0 || o.Size > MaxSize {
		return fmt.Errorf("%w: size must be in 1..%d, got %d", ErrInvalidOption, MaxSize, o.Size)
	}
	if o.Padding < 0 || o.Padding > MaxPadding {
		return fmt.Errorf("%w: padding must be in 0..%d, got %d", ErrInvalidOption, MaxPadding, o.Padding)
	}
	if _, ok := styleNames[o.Style]; !ok {
		return fmt.Errorf("%w: unknown style %d", ErrInvalidOption, int(o.Style))
	}
	if _, ok := gradientNames[o.Gradient]; !ok {
		return fmt.Errorf("%w: unknown gradient %d", ErrInvalidOption, int(o.Gradient))
	}
	if math.IsNaN(o.Radius) || math.IsInf(o.Radius, 0) {
		return fmt.Errorf("%w: radius must be a finite number", ErrInvalidOption)
	}
	if o.MaxPixels < 0 {
		return fmt.Errorf("%w: pixel limit must not be negative, got %d", ErrInvalidOption, o.MaxPixels)
	}
	return nil
}

// RadiusFraction returns Radius clamped to [0, MaxRadius].
func (o RenderOptions) RadiusFraction() float64 {
	return clamp(o.Radius, 0, MaxRadius)
}

// ContrastSample is the foreground color used for the contrast check: the
// plain foreground, or the midpoint of a two-color gradient.
func (o RenderOptions) ContrastSample() Color {
	switch o.Gradient {
	case GradientNone, GradientRainbow:
		return o.Foreground
	}
	to := o.Foreground
	if o.Gradient2 != nil {
		to = *o.Gradient2
	}
	return LerpColor(o.Foreground, to, 0.5)
}

// MinContrast is the ratio below which CheckContrast reports a warning.
const MinContrast = 2.0

// CheckContrast returns the sampled contrast ratio and whether it is at least
// MinContrast. A low ratio never blocks rendering.
func CheckContrast(o RenderOptions) (float64, bool) {
	ratio := ContrastRatio(o.ContrastSample(), o.Background)
	return ratio, ratio >= MinContrast
}
