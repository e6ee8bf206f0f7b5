package imgtool_test

import (
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstyle/internal/imgtool"
)

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, fill(w, h, color.NRGBA{200, 40, 40, 255}), nil))
	require.NoError(t, f.Close())
}

func assertPDF(t *testing.T, path string, pages int) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	n, err := api.PageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, pages, n)
}

func TestJPGsToPDFs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "a.jpg"), 200, 100)
	writeJPEG(t, filepath.Join(dir, "b.JPEG"), 50, 80)
	writePNG(t, filepath.Join(dir, "c.png"), fill(4, 4, color.NRGBA{A: 255}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not a jpeg"), 0o644))

	results, err := imgtool.JPGsToPDFs(dir, false)
	require.NoError(t, err)
	require.Len(t, results, 3, "png files are ignored")

	byName := map[string]imgtool.Result{}
	for _, r := range results {
		byName[filepath.Base(r.Src)] = r
	}
	require.NoError(t, byName["a.jpg"].Err)
	require.NoError(t, byName["b.JPEG"].Err)
	assert.Error(t, byName["broken.jpg"].Err, "undecodable images fail without stopping the batch")

	assertPDF(t, filepath.Join(dir, "a.pdf"), 1)
	assertPDF(t, filepath.Join(dir, "b.pdf"), 1)
	assert.NoFileExists(t, filepath.Join(dir, "broken.pdf"))
	assert.FileExists(t, filepath.Join(dir, "a.jpg"))

	_, err = imgtool.JPGsToPDFs(filepath.Join(dir, "missing"), false)
	assert.Error(t, err)
}

func TestJPGsToPDFsRemoveOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "scan.jpg"), 30, 30)

	results, err := imgtool.JPGsToPDFs(dir, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.NoFileExists(t, filepath.Join(dir, "scan.jpg"))
	assertPDF(t, filepath.Join(dir, "scan.pdf"), 1)
}

func TestRotateAndMergePDFs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "one.jpg"), 100, 50)
	writeJPEG(t, filepath.Join(dir, "two.jpg"), 60, 60)
	_, err := imgtool.JPGsToPDFs(dir, false)
	require.NoError(t, err)
	one, two := filepath.Join(dir, "one.pdf"), filepath.Join(dir, "two.pdf")

	rotated := filepath.Join(dir, "rotated.pdf")
	require.NoError(t, imgtool.RotatePDF(one, rotated, 90))
	assertPDF(t, rotated, 1)
	require.NoError(t, api.ValidateFile(rotated, nil))

	assert.ErrorIs(t, imgtool.RotatePDF(one, rotated, 45), imgtool.ErrBadRotation)
	assert.Error(t, imgtool.RotatePDF(filepath.Join(dir, "missing.pdf"), rotated, 90))

	merged := filepath.Join(dir, "merged.pdf")
	require.NoError(t, imgtool.MergePDFs([]string{one, two, rotated}, merged))
	assertPDF(t, merged, 3)

	assert.Error(t, imgtool.MergePDFs(nil, merged))
	assert.Error(t, imgtool.MergePDFs([]string{one, filepath.Join(dir, "missing.pdf")}, merged))
}
