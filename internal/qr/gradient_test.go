package qr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cristianadrielbraun/qrstyle/internal/qr"
)

func TestResolveNone(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultRenderOptions()
	opts.Foreground = qr.Color{R: 12, G: 34, B: 56}
	second := qr.Color{R: 200, G: 0, B: 0}
	opts.Gradient2 = &second

	for _, p := range [][2]int{{0, 0}, {50, 99}, {100, 100}, {7, 3}} {
		assert.Equal(t, opts.Foreground, qr.Resolve(p[0], p[1], 100, 100, opts))
	}
}

func TestResolveTwoColor(t *testing.T) {
	t.Parallel()

	fg, fg2 := qr.Color{R: 255, G: 0, B: 0}, qr.Color{R: 0, G: 0, B: 255}
	opts := qr.DefaultRenderOptions()
	opts.Foreground = fg
	opts.Gradient2 = &fg2

	opts.Gradient = qr.GradientHorizontal
	assert.Equal(t, fg, qr.Resolve(0, 70, 100, 100, opts))
	assert.Equal(t, fg2, qr.Resolve(100, 30, 100, 100, opts))
	assert.Equal(t, fg2, qr.ResolveNormalized(1, 0, opts))

	opts.Gradient = qr.GradientVertical
	assert.Equal(t, fg, qr.Resolve(90, 0, 100, 100, opts))
	assert.Equal(t, fg2, qr.Resolve(10, 100, 100, 100, opts))

	opts.Gradient = qr.GradientDiagonal
	assert.Equal(t, fg, qr.Resolve(0, 0, 100, 100, opts))
	assert.Equal(t, fg2, qr.Resolve(100, 100, 100, 100, opts))
	assert.Equal(t, qr.Color{R: 127, G: 0, B: 127}, qr.Resolve(50, 50, 100, 100, opts))
}

func TestResolveMissingSecondColor(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultRenderOptions()
	opts.Foreground = qr.Color{R: 1, G: 2, B: 3}
	opts.Gradient = qr.GradientVertical
	assert.Equal(t, opts.Foreground, qr.Resolve(40, 80, 100, 100, opts))
}

func TestResolveRainbow(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultRenderOptions()
	opts.Gradient = qr.GradientRainbow

	assert.Equal(t, qr.Color{R: 242, G: 0, B: 0}, qr.Resolve(0, 0, 100, 100, opts))
	assert.NotEqual(t, qr.Resolve(0, 0, 100, 100, opts), qr.Resolve(60, 40, 100, 100, opts))
}
