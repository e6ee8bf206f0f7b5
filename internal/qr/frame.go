package qr

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// LabelPosition places the frame label above or below the code.
type LabelPosition int

const (
	LabelBottom LabelPosition = iota
	LabelTop
)

func (p LabelPosition) String() string {
	if p == LabelTop {
		return "top"
	}
	return "bottom"
}

// ParseLabelPosition parses "top" or "bottom"; empty means bottom.
func ParseLabelPosition(s string) (LabelPosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom":
		return LabelBottom, nil
	case "top":
		return LabelTop, nil
	}
	return 0, fmt.Errorf("%w: unknown label position %q", ErrInvalidOption, s)
}

// FrameOptions configures the frame compositor.
type FrameOptions struct {
	Enabled       bool
	Label         string
	LabelPosition LabelPosition

	Background Color
	Border     *Color // nil draws no outline
	Radius     int    // corner radius in pixels
	Pad        int    // space between frame edge and code
	LabelPad   int    // space around the label text
	LabelColor Color
	FontSize   float64
	FontPath   string // empty or unreadable uses the bundled font
	MaxPixels  int    // framed canvas area cap; 0 means MaxCanvasPixels
}

// DefaultFrameOptions returns a disabled frame with the usual card look.
func DefaultFrameOptions() FrameOptions {
	border := Color{220, 220, 220}
	return FrameOptions{
		LabelPosition: LabelBottom,
		Background:    White,
		Border:        &border,
		Radius:        24,
		Pad:           32,
		LabelPad:      16,
		LabelColor:    Black,
		FontSize:      28,
	}
}

// Active reports whether Frame would change its input. Any non-empty label
// activates the frame; a whitespace-only label gets no caption band.
func (o FrameOptions) Active() bool {
	return o.Enabled || o.Label != ""
}

// Validate rejects negative spacing and non-positive font sizes.
func (o FrameOptions) Validate() error {
	if o.Pad < 0 || o.Pad > MaxPadding {
		return fmt.Errorf("%w: frame padding must be in 0..%d, got %d", ErrInvalidOption, MaxPadding, o.Pad)
	}
	if o.LabelPad < 0 || o.LabelPad > MaxPadding {
		return fmt.Errorf("%w: label padding must be in 0..%d, got %d", ErrInvalidOption, MaxPadding, o.LabelPad)
	}
	if o.MaxPixels < 0 {
		return fmt.Errorf("%w: pixel limit must not be negative, got %d", ErrInvalidOption, o.MaxPixels)
	}
	if o.Radius < 0 {
		return fmt.Errorf("%w: frame radius must not be negative, got %d", ErrInvalidOption, o.Radius)
	}
	if strings.TrimSpace(o.Label) != "" && (o.FontSize <= 0 || o.FontSize > 512) {
		return fmt.Errorf("%w: font size must be in (0, 512], got %g", ErrInvalidOption, o.FontSize)
	}
	return nil
}

// frameLayout holds the computed geometry of a framed image.
type frameLayout struct {
	label       string
	text        textMetrics
	width       int
	height      int
	bandHeight  int
	qrOrigin    image.Point
	labelTop    int // y of the label anchor line
	labelCenter int // x of the label center
}

func layoutFrame(srcW, srcH int, o FrameOptions, measure func(string) textMetrics) frameLayout {
	l := frameLayout{label: strings.TrimSpace(o.Label)}
	if l.label != "" {
		l.text = measure(l.label)
		l.bandHeight = l.text.height + 2*o.LabelPad
	}
	l.width = srcW + 2*o.Pad
	l.height = srcH + 2*o.Pad + l.bandHeight
	l.labelCenter = l.width / 2

	l.qrOrigin = image.Pt(o.Pad, o.Pad)
	if o.LabelPosition == LabelTop {
		l.qrOrigin.Y += l.bandHeight
		l.labelTop = o.LabelPad / 2
	} else {
		l.labelTop = srcH + o.Pad + o.LabelPad/2
	}
	return l
}

// Frame wraps src in a card with an optional label. When neither a frame
// nor a label is requested src itself is returned. The code pixels are
// copied unchanged.
func Frame(src *image.RGBA, o FrameOptions) (*image.RGBA, error) {
	if !o.Active() {
		return src, nil
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var face font.Face
	measure := func(s string) textMetrics {
		face = loadFace(o.FontPath, o.FontSize)
		return measureText(face, s)
	}
	sb := src.Bounds()
	l := layoutFrame(sb.Dx(), sb.Dy(), o, measure)
	if face != nil {
		defer face.Close()
	}
	if err := checkCanvas(l.width, l.height, o.MaxPixels); err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	fillRect(out, out.Bounds(), o.Background)

	dc := gg.NewContextForRGBA(out)
	if o.Border != nil {
		dc.SetColor(o.Border.toRGBA())
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(1, 1, float64(l.width-2), float64(l.height-2), float64(o.Radius))
		dc.Stroke()
	}

	dst := image.Rectangle{Min: l.qrOrigin, Max: l.qrOrigin.Add(sb.Size())}
	draw.Draw(out, dst, src, sb.Min, draw.Src)

	if l.label != "" {
		dc.SetFontFace(face)
		dc.SetColor(o.LabelColor.toRGBA())
		dc.DrawStringAnchored(l.label, float64(l.labelCenter), float64(l.labelTop+l.text.ascent), 0.5, 0)
	}
	return out, nil
}
