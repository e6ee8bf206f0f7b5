package qr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrstyle/internal/qr"
)

func assertQuietZone(t *testing.T, g *qr.Grid, border int) {
	t.Helper()
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			inZone := i < border || j < border || i >= g.Rows()-border || j >= g.Cols()-border
			if inZone {
				require.False(t, g.At(i, j), "quiet zone module (%d,%d) must be light", i, j)
			}
		}
	}
}

func TestBuildGrid(t *testing.T) {
	t.Parallel()

	encoders := map[string]qr.Encoder{
		"yeqown": qr.YeqownEncoder,
		"skip2":  qr.Skip2Encoder,
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := qr.DefaultMatrixOptions()
			opts.Encoder = enc
			g, err := qr.BuildGrid("HELLO", opts)
			require.NoError(t, err)

			assert.Equal(t, g.Rows(), g.Cols(), "grid must be square")
			assert.Equal(t, 0, (g.Rows()-2*qr.DefaultBorder-17)%4, "symbol size must match a QR version")
			assertQuietZone(t, g, qr.DefaultBorder)

			// Top-left finder pattern starts right after the quiet zone.
			assert.True(t, g.At(4, 4))
			assert.True(t, g.At(7, 7))
		})
	}
}

func TestBuildGridEncodersAgree(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultMatrixOptions()
	opts.Encoder = qr.YeqownEncoder
	a, err := qr.BuildGrid("HELLO", opts)
	require.NoError(t, err)

	opts.Encoder = qr.Skip2Encoder
	b, err := qr.BuildGrid("HELLO", opts)
	require.NoError(t, err)

	assert.Equal(t, a.Rows(), b.Rows())
	assert.Equal(t, 29, b.Rows(), "version 1 plus a 4 module border")
}

func TestBuildGridBorder(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultMatrixOptions()
	opts.Encoder = qr.Skip2Encoder
	opts.Border = 0
	g, err := qr.BuildGrid("HELLO", opts)
	require.NoError(t, err)
	assert.Equal(t, 21, g.Rows())
	assert.True(t, g.At(0, 0), "finder pattern touches the edge without a border")

	opts.Border = 2
	g, err = qr.BuildGrid("HELLO", opts)
	require.NoError(t, err)
	assert.Equal(t, 25, g.Rows())
	assertQuietZone(t, g, 2)

	opts.Border = qr.MaxBorder
	g, err = qr.BuildGrid("HELLO", opts)
	require.NoError(t, err)
	assert.Equal(t, 21+2*qr.MaxBorder, g.Rows())

	opts.Border = qr.MaxBorder + 1
	_, err = qr.BuildGrid("HELLO", opts)
	assert.ErrorIs(t, err, qr.ErrInvalidOption)

	opts.Border = 100000
	_, err = qr.BuildGrid("HELLO", opts)
	assert.ErrorIs(t, err, qr.ErrInvalidOption)
}

func TestBuildGridForcedVersion(t *testing.T) {
	t.Parallel()

	opts := qr.DefaultMatrixOptions()
	opts.Encoder = qr.Skip2Encoder
	opts.Version = 5
	g, err := qr.BuildGrid("HELLO", opts)
	require.NoError(t, err)
	assert.Equal(t, 17+4*5+2*qr.DefaultBorder, g.Rows())
}

func TestBuildGridErrors(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("payload-", 40)

	tests := []struct {
		name   string
		text   string
		mutate func(*qr.MatrixOptions)
		want   error
	}{
		{"empty text", "", nil, qr.ErrEmptyText},
		{"version too high", "HELLO", func(o *qr.MatrixOptions) { o.Version = 41 }, qr.ErrInvalidOption},
		{"negative version", "HELLO", func(o *qr.MatrixOptions) { o.Version = -1 }, qr.ErrInvalidOption},
		{"negative border", "HELLO", func(o *qr.MatrixOptions) { o.Border = -1 }, qr.ErrInvalidOption},
		{"bad level", "HELLO", func(o *qr.MatrixOptions) { o.Level = qr.Level(9) }, qr.ErrInvalidOption},
		{"yeqown too large", long, func(o *qr.MatrixOptions) { o.Version = 1; o.Encoder = qr.YeqownEncoder }, qr.ErrPayloadTooLarge},
		{"skip2 too large", long, func(o *qr.MatrixOptions) { o.Version = 1; o.Encoder = qr.Skip2Encoder }, qr.ErrPayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := qr.DefaultMatrixOptions()
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			_, err := qr.BuildGrid(tt.text, opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPadGrid(t *testing.T) {
	t.Parallel()

	raw := [][]bool{{true, false}, {false, true}}

	t.Run("zero border copies", func(t *testing.T) {
		t.Parallel()
		out := qr.PadGrid(raw, 0)
		assert.Equal(t, raw, out)
		out[0][0] = false
		assert.True(t, raw[0][0], "input must not be aliased")
	})

	t.Run("border", func(t *testing.T) {
		t.Parallel()
		out := qr.PadGrid(raw, 1)
		require.Len(t, out, 4)
		assert.Equal(t, []bool{false, false, false, false}, out[0])
		assert.Equal(t, []bool{false, true, false, false}, out[1])
		assert.Equal(t, []bool{false, false, true, false}, out[2])
		assert.Equal(t, []bool{false, false, false, false}, out[3])
	})
}

func TestNewGrid(t *testing.T) {
	t.Parallel()

	_, err := qr.NewGrid([][]bool{{true, false}, {true}})
	assert.ErrorIs(t, err, qr.ErrInvalidOption)

	_, err = qr.NewGrid(nil)
	assert.ErrorIs(t, err, qr.ErrInvalidOption)

	cells := [][]bool{{true, false}, {false, true}}
	g, err := qr.NewGrid(cells)
	require.NoError(t, err)
	cells[0][0] = false
	assert.True(t, g.At(0, 0), "grid must own its cells")
	assert.False(t, g.At(-1, 0))
	assert.False(t, g.At(0, 5))
	assert.Equal(t, []bool{false, true}, g.Row(1))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]qr.Level{"": qr.LevelM, "l": qr.LevelL, "M": qr.LevelM, "q": qr.LevelQ, " H ": qr.LevelH} {
		got, err := qr.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := qr.ParseLevel("X")
	assert.ErrorIs(t, err, qr.ErrInvalidOption)
	assert.Equal(t, "Q", qr.LevelQ.String())
}

func TestEncoderByName(t *testing.T) {
	t.Parallel()

	enc, err := qr.EncoderByName("")
	require.NoError(t, err)
	assert.Equal(t, qr.YeqownEncoder, enc)

	enc, err = qr.EncoderByName("SKIP2")
	require.NoError(t, err)
	assert.Equal(t, qr.Skip2Encoder, enc)

	_, err = qr.EncoderByName("zxing")
	assert.ErrorIs(t, err, qr.ErrInvalidOption)
}

func TestRuns(t *testing.T) {
	t.Parallel()

	runs := qr.RowRuns([]bool{false, true, true, false, true})
	assert.Equal(t, []qr.Run{{Start: 1, End: 2}, {Start: 4, End: 4}}, runs)
	assert.Equal(t, 2, runs[0].Len())

	assert.Empty(t, qr.RowRuns([]bool{false, false}))
	assert.Equal(t, []qr.Run{{Start: 0, End: 2}}, qr.RowRuns([]bool{true, true, true}))

	g, err := qr.NewGrid([][]bool{
		{true, false},
		{true, true},
		{false, true},
		{true, false},
	})
	require.NoError(t, err)
	assert.Equal(t, []qr.Run{{Start: 0, End: 1}, {Start: 3, End: 3}}, qr.ColumnRuns(g, 0))
	assert.Equal(t, []qr.Run{{Start: 1, End: 2}}, qr.ColumnRuns(g, 1))
}
