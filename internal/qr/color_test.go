package qr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstyle/internal/qr"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := map[string]qr.Color{
		"#abc":          {R: 0xaa, G: 0xbb, B: 0xcc},
		"#1E90FF":       {R: 0x1e, G: 0x90, B: 0xff},
		"336699":        {R: 0x33, G: 0x66, B: 0x99},
		"rgb(1, 2, 3)":  {R: 1, G: 2, B: 3},
		"Navy":          {R: 0, G: 0, B: 128},
		" white ":       qr.White,
		"rgb(0,0,0)":    qr.Black,
		"gainsboro":     {R: 220, G: 220, B: 220},
		"#000000":       qr.Black,
		"rgb(255,0,10)": {R: 255, G: 0, B: 10},
	}
	for in, want := range tests {
		got, err := qr.ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "bogus", "#12", "#gggggg", "rgb(1,2)", "rgb(256,0,0)"} {
		_, err := qr.ParseColor(bad)
		assert.ErrorIs(t, err, qr.ErrInvalidOption, bad)
	}
}

func TestParseOptionalColor(t *testing.T) {
	t.Parallel()

	c, err := qr.ParseOptionalColor("none")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = qr.ParseOptionalColor("")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = qr.ParseOptionalColor("red")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, qr.Color{R: 255, G: 0, B: 0}, *c)

	_, err = qr.ParseOptionalColor("nope")
	assert.ErrorIs(t, err, qr.ErrInvalidOption)
}

func TestColorHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#0a0b0c", qr.Color{R: 10, G: 11, B: 12}.Hex())
	assert.Equal(t, "#ffffff", qr.White.String())
}

func TestLerpColor(t *testing.T) {
	t.Parallel()

	a, b := qr.Color{R: 0, G: 100, B: 200}, qr.Color{R: 200, G: 100, B: 0}
	assert.Equal(t, a, qr.LerpColor(a, b, 0))
	assert.Equal(t, b, qr.LerpColor(a, b, 1))
	assert.Equal(t, qr.Color{R: 100, G: 100, B: 100}, qr.LerpColor(a, b, 0.5))
	assert.Equal(t, a, qr.LerpColor(a, b, -3), "t is clamped")
	assert.Equal(t, b, qr.LerpColor(a, b, 7), "t is clamped")
}

func TestContrastRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 21.0, qr.ContrastRatio(qr.Black, qr.White), 1e-9)
	assert.InDelta(t, 21.0, qr.ContrastRatio(qr.White, qr.Black), 1e-9)
	assert.InDelta(t, 1.0, qr.ContrastRatio(qr.Color{R: 90, G: 90, B: 90}, qr.Color{R: 90, G: 90, B: 90}), 1e-9)
}

func TestCheckContrast(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultRenderOptions()
	ratio, ok := qr.CheckContrast(opts)
	assert.True(t, ok)
	assert.InDelta(t, 21.0, ratio, 1e-9)

	opts.Foreground = qr.Color{R: 0xee, G: 0xee, B: 0xee}
	_, ok = qr.CheckContrast(opts)
	assert.False(t, ok)

	// A two-color gradient is judged by its midpoint.
	opts.Foreground = qr.Black
	opts.Gradient = qr.GradientHorizontal
	white := qr.White
	opts.Gradient2 = &white
	assert.Equal(t, qr.Color{R: 127, G: 127, B: 127}, opts.ContrastSample())

	opts.Gradient = qr.GradientRainbow
	assert.Equal(t, qr.Black, opts.ContrastSample())
}
