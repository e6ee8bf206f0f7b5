package qr

import (
	"fmt"
	"image"
)

// ModuleSize is the integer pixel edge of one module such that the whole
// grid fits within size × size. It is never less than 1.
func ModuleSize(g *Grid, size int) int {
	return max(1, min(size/g.Cols(), size/g.Rows()))
}

// Render draws g into a new buffer of (cols·m + 2·padding) × (rows·m + 2·padding)
// pixels, where m is ModuleSize.
func Render(g *Grid, opts RenderOptions) (*image.RGBA, error) {
	r, err := newRenderer(g, opts)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	fillRect(img, img.Bounds(), opts.Background)
	r.walk(func(s shape) { s.fill(img) })

	if opts.Logo != "" {
		logo, err := LoadLogo(opts.Logo)
		if err != nil {
			return nil, err
		}
		OverlayLogo(img, logo, r.qrBounds(), r.module, opts.Background)
	}
	return img, nil
}

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeEllipse
	shapeRoundedRect
)

// shape is one filled primitive produced by the renderer.
type shape struct {
	kind   shapeKind
	rect   image.Rectangle
	radius int
	color  Color
}

func (s shape) fill(img *image.RGBA) {
	switch s.kind {
	case shapeEllipse:
		fillEllipse(img, s.rect, s.color)
	case shapeRoundedRect:
		fillRoundedRect(img, s.rect, s.radius, s.color)
	default:
		fillRect(img, s.rect, s.color)
	}
}

type renderer struct {
	grid          *Grid
	opts          RenderOptions
	module        int
	radius        float64 // corner radius in pixels
	width, height int
}

func newRenderer(g *Grid, opts RenderOptions) (*renderer, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidOption)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := ModuleSize(g, opts.Size)
	r := &renderer{
		grid:   g,
		opts:   opts,
		module: m,
		radius: opts.RadiusFraction() * float64(m),
		width:  g.Cols()*m + 2*opts.Padding,
		height: g.Rows()*m + 2*opts.Padding,
	}
	if err := checkCanvas(r.width, r.height, opts.MaxPixels); err != nil {
		return nil, err
	}
	return r, nil
}

// cell returns the pixel rectangle covering modules [c0, c1] × [r0, r1].
func (r *renderer) cell(r0, c0, r1, c1 int) image.Rectangle {
	p, m := r.opts.Padding, r.module
	return image.Rect(p+c0*m, p+r0*m, p+(c1+1)*m, p+(r1+1)*m)
}

// qrBounds is the area covered by the grid, quiet zone included.
func (r *renderer) qrBounds() image.Rectangle {
	return r.cell(0, 0, r.grid.Rows()-1, r.grid.Cols()-1)
}

// colorAt samples the gradient once, at the center of rect.
func (r *renderer) colorAt(rect image.Rectangle) Color {
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	return Resolve(cx, cy, r.width, r.height, r.opts)
}

// walk emits the shapes of the configured style in drawing order.
func (r *renderer) walk(emit func(shape)) {
	switch r.opts.Style {
	case StyleBarsHorizontal:
		r.walkRowBars(emit)
	case StyleBarsVertical:
		r.walkColumnBars(emit)
	default:
		r.walkModules(emit)
	}
}

func (r *renderer) walkModules(emit func(shape)) {
	m := r.module
	inset := max(1, int(0.1*float64(m)))

	kind, rad, inner := shapeRect, 0, false
	switch r.opts.Style {
	case StyleCircles:
		kind, inner = shapeEllipse, true
	case StyleRounded:
		kind, rad = shapeRoundedRect, int(r.radius)
	case StyleContinuous:
		// Always keep a visible radius so neighbours read as separate modules.
		kind, inner, rad = shapeRoundedRect, true, int(r.radius)
		if r.radius <= 0 {
			rad = int(0.25 * float64(m))
		}
	}

	for i := 0; i < r.grid.Rows(); i++ {
		for j := 0; j < r.grid.Cols(); j++ {
			if !r.grid.cells[i][j] {
				continue
			}
			rect := r.cell(i, j, i, j)
			c := r.colorAt(rect)
			if inner {
				if in := rect.Inset(inset); !in.Empty() {
					rect = in
				}
			}
			emit(shape{kind: kind, rect: rect, radius: rad, color: c})
		}
	}
}

func (r *renderer) walkRowBars(emit func(shape)) {
	rad := int(r.radius)
	for i := 0; i < r.grid.Rows(); i++ {
		for _, run := range RowRuns(r.grid.cells[i]) {
			rect := r.cell(i, run.Start, i, run.End)
			emit(shape{kind: shapeRoundedRect, rect: rect, radius: rad, color: r.colorAt(rect)})
		}
	}
}

func (r *renderer) walkColumnBars(emit func(shape)) {
	rad := int(r.radius)
	for j := 0; j < r.grid.Cols(); j++ {
		for _, run := range ColumnRuns(r.grid, j) {
			rect := r.cell(run.Start, j, run.End, j)
			emit(shape{kind: shapeRoundedRect, rect: rect, radius: rad, color: r.colorAt(rect)})
		}
	}
}
