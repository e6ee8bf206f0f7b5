package qr

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// JPEGQuality is used for every JPEG written by Encode.
const JPEGQuality = 92

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatSVG Format = "svg"
)

// ParseFormat accepts png, jpg/jpeg and svg; empty means png.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// Encode writes a raster image as PNG or JPEG. SVG needs the grid, not a
// raster, and is rejected here; use WriteSVG.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case FormatJPG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("%w: cannot encode raster as %q", ErrUnsupportedFormat, f)
	}
	return nil
}

// Request bundles everything needed to produce one image.
type Request struct {
	Text   string
	Matrix MatrixOptions
	Render RenderOptions
	Frame  FrameOptions
}

// NewRequest returns a request for text with default options.
func NewRequest(text string) Request {
	return Request{
		Text:   text,
		Matrix: DefaultMatrixOptions(),
		Render: DefaultRenderOptions(),
		Frame:  DefaultFrameOptions(),
	}
}

// Generate runs the raster pipeline: grid, render, frame.
func Generate(req Request) (*image.RGBA, error) {
	g, err := BuildGrid(req.Text, req.Matrix)
	if err != nil {
		return nil, err
	}
	img, err := Render(g, req.Render)
	if err != nil {
		return nil, err
	}
	return Frame(img, req.Frame)
}

// WriteImage generates req and writes it to w in format f.
func WriteImage(w io.Writer, req Request, f Format) error {
	if f == FormatSVG {
		g, err := BuildGrid(req.Text, req.Matrix)
		if err != nil {
			return err
		}
		return WriteSVG(w, g, req.Render, req.Frame)
	}
	img, err := Generate(req)
	if err != nil {
		return err
	}
	return Encode(w, img, f)
}
