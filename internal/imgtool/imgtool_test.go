package imgtool_test

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/cristianadrielbraun/qrstyle/internal/imgtool"
)

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func writeTIFF(t *testing.T, path string, c tiff.CompressionType) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, fill(4, 4, color.NRGBA{10, 20, 30, 255}), &tiff.Options{Compression: c}))
	require.NoError(t, f.Close())
}

func TestNormalizeExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", imgtool.NormalizeExt("JPG"))
	assert.Equal(t, ".png", imgtool.NormalizeExt("..png"))
	assert.Equal(t, "", imgtool.NormalizeExt(""))
}

func TestConvertFileToJPEG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "clear.png")
	writePNG(t, src, fill(8, 8, color.NRGBA{0, 0, 0, 0}))

	dest, err := imgtool.ConvertFile(src, "jpg", imgtool.ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clear.jpg"), dest)
	assert.FileExists(t, src, "original kept unless requested")

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)

	r, g, b, _ := img.At(4, 4).RGBA()
	assert.Greater(t, r>>8, uint32(240), "transparency is composited onto white")
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestConvertFileOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writePNG(t, src, fill(4, 4, color.NRGBA{255, 0, 0, 255}))

	t.Run("dry run writes nothing", func(t *testing.T) {
		dest, err := imgtool.ConvertFile(src, ".bmp", imgtool.ConvertOptions{DryRun: true})
		require.NoError(t, err)
		assert.NoFileExists(t, dest)
	})

	t.Run("existing destination", func(t *testing.T) {
		_, err := imgtool.ConvertFile(src, ".gif", imgtool.ConvertOptions{})
		require.NoError(t, err)
		_, err = imgtool.ConvertFile(src, ".gif", imgtool.ConvertOptions{})
		assert.ErrorIs(t, err, imgtool.ErrDestinationExists)
		_, err = imgtool.ConvertFile(src, ".gif", imgtool.ConvertOptions{Overwrite: true})
		assert.NoError(t, err)
	})

	t.Run("unsupported target", func(t *testing.T) {
		_, err := imgtool.ConvertFile(src, ".webp", imgtool.ConvertOptions{})
		assert.ErrorIs(t, err, imgtool.ErrUnsupportedFormat)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := imgtool.ConvertFile(filepath.Join(dir, "nope.png"), ".jpg", imgtool.ConvertOptions{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not an image", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.png")
		require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
		_, err := imgtool.ConvertFile(bad, ".jpg", imgtool.ConvertOptions{})
		assert.Error(t, err)
		assert.NoFileExists(t, filepath.Join(dir, "bad.jpg"))
	})

	t.Run("remove original", func(t *testing.T) {
		other := filepath.Join(dir, "b.png")
		writePNG(t, other, fill(4, 4, color.NRGBA{0, 255, 0, 255}))
		dest, err := imgtool.ConvertFile(other, ".tif", imgtool.ConvertOptions{RemoveOriginal: true})
		require.NoError(t, err)
		assert.FileExists(t, dest)
		assert.NoFileExists(t, other)

		report, err := imgtool.CheckTIFFCompression(dest)
		require.NoError(t, err)
		assert.Nil(t, report, "converted TIFFs are uncompressed")
	})
}

func TestConvertDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "one.png"), fill(2, 2, color.NRGBA{1, 2, 3, 255}))
	writePNG(t, filepath.Join(dir, "two.PNG"), fill(2, 2, color.NRGBA{4, 5, 6, 255}))
	writePNG(t, filepath.Join(dir, "three.png"), fill(2, 2, color.NRGBA{7, 8, 9, 255}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "three.jpg"), []byte("taken"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	results, err := imgtool.ConvertDir(dir, "png", "jpg", imgtool.ConvertOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	var ok, skipped int
	for _, r := range results {
		switch {
		case r.Err == nil:
			ok++
			assert.FileExists(t, r.Dest)
		case r.Skipped():
			skipped++
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, skipped)

	_, err = imgtool.ConvertDir(dir, "png", "heic", imgtool.ConvertOptions{})
	assert.ErrorIs(t, err, imgtool.ErrUnsupportedFormat)

	_, err = imgtool.ConvertDir(filepath.Join(dir, "missing"), "png", "jpg", imgtool.ConvertOptions{})
	assert.Error(t, err)
}

func TestGreyscaleBMPDir(t *testing.T) {
	t.Parallel()

	in, out := t.TempDir(), filepath.Join(t.TempDir(), "grey")
	f, err := os.Create(filepath.Join(in, "red.bmp"))
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, fill(3, 2, color.NRGBA{255, 0, 0, 255})))
	require.NoError(t, f.Close())
	writePNG(t, filepath.Join(in, "ignored.png"), fill(1, 1, color.NRGBA{A: 255}))

	written, err := imgtool.GreyscaleBMPDir(in, out)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "red.bmp")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	require.Greater(t, len(data), 30)
	assert.Equal(t, byte(8), data[28], "8 bits per pixel")

	r, err := os.Open(written[0])
	require.NoError(t, err)
	defer r.Close()
	img, err := bmp.Decode(r)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	gray := color.GrayModel.Convert(img.At(0, 0)).(color.Gray)
	assert.Equal(t, uint8(76), gray.Y)
}

func TestRotateDir(t *testing.T) {
	t.Parallel()

	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "wide.png"), fill(20, 10, color.NRGBA{0, 0, 255, 255}))

	written, err := imgtool.RotateDir(in, out, ".png", 90)
	require.NoError(t, err)
	require.Len(t, written, 1)

	f, err := os.Open(written[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	_, err = imgtool.RotateDir(in, out, "", 90)
	assert.ErrorIs(t, err, imgtool.ErrUnsupportedFormat)
}

func TestCheckTIFFCompression(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "a_plain.tif")
	deflated := filepath.Join(dir, "b_deflate.tif")
	writeTIFF(t, plain, tiff.Uncompressed)
	writeTIFF(t, deflated, tiff.Deflate)

	report, err := imgtool.CheckTIFFCompression(plain)
	require.NoError(t, err)
	assert.Nil(t, report)

	report, err = imgtool.CheckTIFFCompression(deflated)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Page)
	assert.Equal(t, "ADOBE_DEFLATE", imgtool.CompressionName(report.Compression))
	assert.Contains(t, report.String(), "b_deflate.tif uses ADOBE_DEFLATE compression on page 0")

	reports, err := imgtool.CheckTIFFGlob(filepath.Join(dir, "*.tif"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, deflated, reports[0].Path)

	junk := filepath.Join(dir, "junk.tif")
	require.NoError(t, os.WriteFile(junk, []byte("GIF89a.."), 0o644))
	_, err = imgtool.CheckTIFFCompression(junk)
	assert.ErrorIs(t, err, imgtool.ErrNotTIFF)

	assert.Equal(t, "UNKNOWN(9)", imgtool.CompressionName(9))
}
