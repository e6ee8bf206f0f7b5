package imgtool

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/signintech/gopdf"
)

// PDFResolution is the pixel density JPGsToPDFs assumes when sizing pages.
const PDFResolution = 100

var ErrBadRotation = errors.New("rotation must be a multiple of 90 degrees")

func init() {
	// Keep pdfcpu from creating a config directory in the user's home.
	api.DisableConfigDir()
}

// JPGsToPDFs writes every .jpg or .jpeg file in dir to a single-page PDF
// beside it, with the page sized to the image at PDFResolution. Images that
// cannot be decoded are recorded as failed results and the batch goes on.
func JPGsToPDFs(dir string, removeOriginal bool) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var results []Result
	for _, entry := range entries {
		ext := NormalizeExt(filepath.Ext(entry.Name()))
		if !entry.Type().IsRegular() || (ext != ".jpg" && ext != ".jpeg") {
			continue
		}

		src := filepath.Join(dir, entry.Name())
		dest := strings.TrimSuffix(src, filepath.Ext(src)) + ".pdf"
		r := Result{Src: src, Dest: dest, Err: jpgToPDF(src, dest)}
		if r.Err != nil {
			slog.Warn("skipping image", "src", src, "error", r.Err)
			results = append(results, r)
			continue
		}
		slog.Info("pdf written", "src", src, "dest", dest)
		if removeOriginal {
			if err := os.Remove(src); err != nil {
				r.Err = fmt.Errorf("removing %s: %w", src, err)
			}
		}
		results = append(results, r)
	}
	return results, nil
}

func jpgToPDF(src, dest string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	b := img.Bounds()
	page := gopdf.Rect{
		W: float64(b.Dx()) * 72 / PDFResolution,
		H: float64(b.Dy()) * 72 / PDFResolution,
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: page})
	pdf.AddPage()
	if err := pdf.ImageFrom(img, 0, 0, &page); err != nil {
		return fmt.Errorf("embedding %s: %w", src, err)
	}
	if err := pdf.WritePdf(dest); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// RotatePDF rotates every page of in clockwise by degrees and writes the
// result to out.
func RotatePDF(in, out string, degrees int) error {
	if degrees%90 != 0 {
		return fmt.Errorf("%w, got %d", ErrBadRotation, degrees)
	}
	if err := api.RotateFile(in, out, degrees, nil, nil); err != nil {
		return fmt.Errorf("rotating %s: %w", in, err)
	}
	slog.Info("pdf rotated", "src", in, "dest", out, "degrees", degrees)
	return nil
}

// MergePDFs concatenates the pages of inputs, in order, into out.
func MergePDFs(inputs []string, out string) error {
	if len(inputs) == 0 {
		return errors.New("no input PDFs")
	}
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("input %s: %w", in, err)
		}
	}
	if err := api.MergeCreateFile(inputs, out, false, nil); err != nil {
		return fmt.Errorf("merging into %s: %w", out, err)
	}
	slog.Info("pdfs merged", "inputs", len(inputs), "dest", out)
	return nil
}
