package imgtool

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// RotateDir rotates every file in in with extension ext by degrees
// counter-clockwise, growing the canvas to fit, and writes the results to
// out. Formats without an encoder (webp) are written as PNG.
func RotateDir(in, out, ext string, degrees float64) ([]string, error) {
	norm := NormalizeExt(ext)
	if norm == "" {
		return nil, fmt.Errorf("%w: empty extension", ErrUnsupportedFormat)
	}
	entries, err := os.ReadDir(in)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", in, err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", out, err)
	}

	var written []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || NormalizeExt(filepath.Ext(entry.Name())) != norm {
			continue
		}

		src := filepath.Join(in, entry.Name())
		img, err := imaging.Open(src)
		if err != nil {
			return written, fmt.Errorf("opening %s: %w", src, err)
		}
		rotated := imaging.Rotate(img, degrees, color.Transparent)

		dest := filepath.Join(out, entry.Name())
		format, ok := targetFormats[norm]
		if !ok {
			dest = strings.TrimSuffix(dest, filepath.Ext(dest)) + ".png"
			format = imaging.PNG
		}
		if err := save(rotated, dest, format, 100); err != nil {
			return written, err
		}
		slog.Info("image rotated", "dest", dest, "degrees", degrees)
		written = append(written, dest)
	}
	return written, nil
}
