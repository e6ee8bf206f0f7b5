package qr

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"strings"
)

// WriteSVG writes a vector rendering of g. The geometry matches Render
// exactly: one element per shape, each filled with the color sampled at its
// center. When frame is active the card background fills the whole canvas,
// as it does in Frame, and the outline and label are emitted on top.
func WriteSVG(w io.Writer, g *Grid, opts RenderOptions, frame FrameOptions) error {
	r, err := newRenderer(g, opts)
	if err != nil {
		return err
	}

	var logo *Logo
	if opts.Logo != "" {
		if logo, err = LoadLogo(opts.Logo); err != nil {
			return err
		}
	}

	width, height := r.width, r.height
	var l frameLayout
	if frame.Active() {
		if err := frame.Validate(); err != nil {
			return err
		}
		l = layoutFrame(r.width, r.height, frame, func(s string) textMetrics {
			face := loadFace(frame.FontPath, frame.FontSize)
			defer face.Close()
			return measureText(face, s)
		})
		width, height = l.width, l.height
		if err := checkCanvas(width, height, frame.MaxPixels); err != nil {
			return err
		}
	}

	sb := strings.Builder{}
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		width, height, width, height))

	if frame.Active() {
		sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="%s"/>`, width, height, frame.Background.Hex()))
		if frame.Border != nil {
			sb.WriteString(fmt.Sprintf(`<rect x="1" y="1" width="%d" height="%d" rx="%d" fill="none" stroke="%s" stroke-width="2"/>`,
				width-2, height-2, frame.Radius, frame.Border.Hex()))
		}
		sb.WriteString(fmt.Sprintf(`<g transform="translate(%d,%d)">`, l.qrOrigin.X, l.qrOrigin.Y))
	}

	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="%s"/>`, r.width, r.height, opts.Background.Hex()))
	r.walk(func(s shape) { writeSVGShape(&sb, s) })

	if logo != nil {
		box, plate := logoLayout(logo, r.qrBounds(), r.module)
		writeSVGRect(&sb, plate, 0, opts.Background)
		sb.WriteString(fmt.Sprintf(`<image x="%d" y="%d" width="%d" height="%d" href="data:%s;base64,%s"/>`,
			box.Min.X, box.Min.Y, box.Dx(), box.Dy(), logo.mime, base64.StdEncoding.EncodeToString(logo.data)))
	}

	if frame.Active() {
		sb.WriteString(`</g>`)
		if l.label != "" {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="%g" fill="%s">`,
				l.labelCenter, l.labelTop+l.text.ascent, frame.FontSize, frame.LabelColor.Hex()))
			_ = xml.EscapeText(&sb, []byte(l.label))
			sb.WriteString(`</text>`)
		}
	}
	sb.WriteString(`</svg>`)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

func writeSVGShape(sb *strings.Builder, s shape) {
	switch s.kind {
	case shapeEllipse:
		rx, ry := float64(s.rect.Dx())/2, float64(s.rect.Dy())/2
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s"/>`,
			float64(s.rect.Min.X)+rx, float64(s.rect.Min.Y)+ry, rx, ry, s.color.Hex()))
	case shapeRoundedRect:
		writeSVGRect(sb, s.rect, s.radius, s.color)
	default:
		writeSVGRect(sb, s.rect, 0, s.color)
	}
}

func writeSVGRect(sb *strings.Builder, r image.Rectangle, radius int, c Color) {
	radius = min(radius, min(r.Dx(), r.Dy())/2)
	if radius > 0 {
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s"/>`,
			r.Min.X, r.Min.Y, r.Dx(), r.Dy(), radius, c.Hex()))
		return
	}
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
		r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c.Hex()))
}
