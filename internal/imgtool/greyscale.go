package imgtool

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// GreyscaleBMPDir writes an 8-bit greyscale copy of every .bmp file in in
// to out, keeping file names. It returns the written paths.
func GreyscaleBMPDir(in, out string) ([]string, error) {
	entries, err := os.ReadDir(in)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", in, err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", out, err)
	}

	var written []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ".bmp") {
			continue
		}
		src := filepath.Join(in, entry.Name())
		dest := filepath.Join(out, entry.Name())
		if err := greyscaleBMP(src, dest); err != nil {
			return written, err
		}
		slog.Info("converted to 8-bit greyscale", "file", entry.Name())
		written = append(written, dest)
	}
	return written, nil
}

func greyscaleBMP(src, dest string) (err error) {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	gray := toGray(img)

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := bmp.Encode(f, gray); err != nil {
		return fmt.Errorf("encoding %s: %w", dest, err)
	}
	return nil
}

// toGray converts img to one 8-bit luma channel.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}
