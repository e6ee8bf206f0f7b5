package qr

import (
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// loadFace opens the TrueType/OpenType font at path. Any failure falls back
// to the bundled Go Regular face; a missing label font is never fatal.
func loadFace(path string, size float64) font.Face {
	if path != "" {
		face, err := faceFromFile(path, size)
		if err == nil {
			return face
		}
		slog.Debug("label font unavailable, using default", "path", path, "error", err)
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic("qr: bundled font is invalid: " + err.Error())
	}
	face, err := opentype.NewFace(f, faceOptions(size))
	if err != nil {
		panic("qr: bundled font is invalid: " + err.Error())
	}
	return face
}

func faceFromFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, faceOptions(size))
}

func faceOptions(size float64) *opentype.FaceOptions {
	return &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}
}

// textMetrics is the measured ink box of a label.
type textMetrics struct {
	width, height int
	ascent        int // baseline offset below the anchor line
}

func measureText(face font.Face, s string) textMetrics {
	b, _ := font.BoundString(face, s)
	return textMetrics{
		width:  (b.Max.X - b.Min.X).Ceil(),
		height: (b.Max.Y - b.Min.Y).Ceil(),
		ascent: face.Metrics().Ascent.Ceil(),
	}
}
