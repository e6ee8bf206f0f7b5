package qr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// LogoScale is the logo edge as a fraction of the QR edge. Anything much
// larger needs error-correction level H to stay scannable.
const LogoScale = 0.2

// Logo is a decoded center logo, either raster or vector.
type Logo struct {
	raster image.Image
	icon   *oksvg.SvgIcon

	data []byte
	mime string
}

// LoadLogo reads a PNG, JPEG or SVG file.
func LoadLogo(path string) (*Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	return DecodeLogo(data, strings.EqualFold(filepath.Ext(path), ".svg"))
}

// DecodeLogo decodes logo bytes; isSVG selects the vector decoder.
func DecodeLogo(data []byte, isSVG bool) (*Logo, error) {
	if isSVG {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse SVG logo: %w", err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			return nil, fmt.Errorf("%w: SVG logo has no view box", ErrInvalidOption)
		}
		return &Logo{icon: icon, data: data, mime: "image/svg+xml"}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return &Logo{raster: img, data: data, mime: "image/" + format}, nil
}

func (l *Logo) size() (w, h float64) {
	if l.icon != nil {
		return l.icon.ViewBox.W, l.icon.ViewBox.H
	}
	b := l.raster.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// logoLayout returns the logo rectangle and the background plate behind
// it, one module wider on every side, for a QR occupying area.
func logoLayout(l *Logo, area image.Rectangle, module int) (box, plate image.Rectangle) {
	edge := int(float64(min(area.Dx(), area.Dy())) * LogoScale)
	if edge < 1 {
		edge = 1
	}
	c := image.Pt((area.Min.X+area.Max.X)/2, (area.Min.Y+area.Max.Y)/2)
	square := image.Rect(c.X-edge/2, c.Y-edge/2, c.X-edge/2+edge, c.Y-edge/2+edge)

	w, h := l.size()
	box = fitRect(square, w, h)
	plate = box.Inset(-module)
	return box, plate
}

// fitRect centers a w:h rectangle inside r, as large as possible.
func fitRect(r image.Rectangle, w, h float64) image.Rectangle {
	if w <= 0 || h <= 0 {
		return r
	}
	scale := min(float64(r.Dx())/w, float64(r.Dy())/h)
	fw, fh := max(1, int(w*scale)), max(1, int(h*scale))
	x0 := r.Min.X + (r.Dx()-fw)/2
	y0 := r.Min.Y + (r.Dy()-fh)/2
	return image.Rect(x0, y0, x0+fw, y0+fh)
}

// OverlayLogo draws logo centered over the QR area on a plate of color bg.
func OverlayLogo(img *image.RGBA, logo *Logo, area image.Rectangle, module int, bg Color) {
	box, plate := logoLayout(logo, area, module)
	fillRect(img, plate, bg)

	if logo.icon != nil {
		w, h := box.Dx(), box.Dy()
		tmp := image.NewRGBA(image.Rect(0, 0, w, h))
		logo.icon.SetTarget(0, 0, float64(w), float64(h))
		scanner := rasterx.NewScannerGV(w, h, tmp, tmp.Bounds())
		logo.icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
		draw.Draw(img, box, tmp, image.Point{}, draw.Over)
		return
	}
	draw.CatmullRom.Scale(img, box, logo.raster, logo.raster.Bounds(), draw.Over, nil)
}
