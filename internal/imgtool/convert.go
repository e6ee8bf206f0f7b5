// Package imgtool contains batch image and document utilities. It converts
// formats, exports greyscale BMPs, rotates images, checks TIFF compression
// and turns JPEGs into PDFs that it can rotate and merge.
package imgtool

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// targetFormats maps a normalized extension to the encoder used for it.
var targetFormats = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".jpe":  imaging.JPEG,
	".png":  imaging.PNG,
	".gif":  imaging.GIF,
	".tif":  imaging.TIFF,
	".tiff": imaging.TIFF,
	".bmp":  imaging.BMP,
}

// NormalizeExt lowercases ext and gives it exactly one leading dot.
func NormalizeExt(ext string) string {
	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	if ext == "" {
		return ""
	}
	return "." + strings.ToLower(ext)
}

// ConvertOptions configures ConvertFile and ConvertDir.
type ConvertOptions struct {
	Overwrite bool
	// Quality is the JPEG quality in 1..100; 0 means 100.
	Quality int
	// Background replaces transparency in JPEG output; nil means white.
	Background color.Color
	DryRun     bool
	// RemoveOriginal deletes src after a successful conversion to a
	// different extension.
	RemoveOriginal bool
}

func (o ConvertOptions) quality() int {
	if o.Quality <= 0 || o.Quality > 100 {
		return 100
	}
	return o.Quality
}

func (o ConvertOptions) background() color.Color {
	if o.Background == nil {
		return color.White
	}
	return o.Background
}

// ConvertFile converts src to destExt, writing next to src, and returns the
// destination path. EXIF orientation is applied before encoding.
func ConvertFile(src, destExt string, opts ConvertOptions) (string, error) {
	ext := NormalizeExt(destExt)
	format, ok := targetFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, destExt)
	}
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dest := strings.TrimSuffix(src, filepath.Ext(src)) + ext
	if !opts.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%w: %s (use overwrite)", ErrDestinationExists, dest)
		}
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("cannot identify image %s: %w", src, err)
	}
	if format == imaging.JPEG {
		img = flatten(img, opts.background())
	}

	if opts.DryRun {
		slog.Info("dry run, not writing", "src", src, "dest", dest, "format", format.String())
		return dest, nil
	}

	if err := save(img, dest, format, opts.quality()); err != nil {
		return "", err
	}

	if opts.RemoveOriginal && !strings.EqualFold(filepath.Ext(src), ext) {
		if err := os.Remove(src); err != nil {
			slog.Warn("couldn't remove original", "src", src, "error", err)
		}
	}
	return dest, nil
}

// flatten composites img onto an opaque background.
func flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// save encodes img to path. A half-written file is removed on failure.
func save(img image.Image, path string, format imaging.Format, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	// imaging always deflates TIFFs; keep them readable by tools that only
	// handle uncompressed data.
	if format == imaging.TIFF {
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Uncompressed})
	} else {
		err = imaging.Encode(f, img, format, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Result is the outcome of converting one file in a directory.
type Result struct {
	Src  string
	Dest string
	Err  error
}

// Skipped reports whether the file was left alone because its destination
// already existed.
func (r Result) Skipped() bool {
	return errors.Is(r.Err, ErrDestinationExists)
}

// ConvertDir converts every file in dir whose extension matches oldExt.
// Per-file failures are recorded in the results and do not stop the batch.
func ConvertDir(dir, oldExt, newExt string, opts ConvertOptions) ([]Result, error) {
	newNorm := NormalizeExt(newExt)
	if _, ok := targetFormats[newNorm]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, newExt)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	oldNorm := NormalizeExt(oldExt)
	var results []Result
	for _, entry := range entries {
		if !entry.Type().IsRegular() || NormalizeExt(filepath.Ext(entry.Name())) != oldNorm {
			continue
		}

		src := filepath.Join(dir, entry.Name())
		dest, err := ConvertFile(src, newNorm, opts)
		r := Result{Src: src, Dest: dest, Err: err}
		switch {
		case err == nil:
			slog.Info("converted", "src", entry.Name(), "dest", filepath.Base(dest))
		case r.Skipped():
			slog.Info("skipped", "src", entry.Name(), "reason", err)
		default:
			slog.Error("conversion failed", "src", entry.Name(), "error", err)
		}
		results = append(results, r)
	}
	return results, nil
}
