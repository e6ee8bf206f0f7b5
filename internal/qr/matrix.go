package qr

import (
	"fmt"
	"strings"
)

// Level is the QR error-correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses L, M, Q or H. An empty string means M.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "", "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return 0, fmt.Errorf("%w: unknown error correction level %q", ErrInvalidOption, s)
}

const (
	MinVersion    = 1
	MaxVersion    = 40
	DefaultBorder = 4
	MaxBorder     = 64
)

// symbolSize is the module count per side of a symbol of the given version.
func symbolSize(version int) int {
	return 17 + 4*version
}

// Encoder builds the raw module matrix of a QR symbol, without quiet zone.
// A version of 0 asks the encoder to pick the smallest version that fits.
type Encoder interface {
	Encode(text string, level Level, version int) ([][]bool, error)
}

// EncoderByName returns the encoder registered under name: "yeqown" (the
// default, also used for "") or "skip2".
func EncoderByName(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yeqown":
		return YeqownEncoder, nil
	case "skip2":
		return Skip2Encoder, nil
	}
	return nil, fmt.Errorf("%w: unknown encoder %q", ErrInvalidOption, name)
}

// MatrixOptions configures BuildGrid.
type MatrixOptions struct {
	Level   Level
	Version int // 0 means auto-fit
	Border  int // quiet zone in modules
	Encoder Encoder
}

// DefaultMatrixOptions returns level M, auto-fit and a 4 module quiet zone.
func DefaultMatrixOptions() MatrixOptions {
	return MatrixOptions{
		Level:  LevelM,
		Border: DefaultBorder,
	}
}

// Grid is an immutable row-major matrix of QR modules, true meaning dark.
type Grid struct {
	cells [][]bool
	cols  int
}

// NewGrid copies cells into a Grid. All rows must have the same length.
func NewGrid(cells [][]bool) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must not be empty", ErrInvalidOption)
	}
	cols := len(cells[0])
	cp := make([][]bool, len(cells))
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d modules, want %d", ErrInvalidOption, i, len(row), cols)
		}
		cp[i] = append([]bool(nil), row...)
	}
	return &Grid{cells: cp, cols: cols}, nil
}

func (g *Grid) Rows() int { return len(g.cells) }
func (g *Grid) Cols() int { return g.cols }

// At reports whether the module at row, col is dark. Out of range is light.
func (g *Grid) At(row, col int) bool {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.cols {
		return false
	}
	return g.cells[row][col]
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []bool {
	return append([]bool(nil), g.cells[i]...)
}

// PadGrid surrounds raw with border light modules on every side.
// A border of 0 returns a copy of raw.
func PadGrid(raw [][]bool, border int) [][]bool {
	if border <= 0 {
		out := make([][]bool, len(raw))
		for i, row := range raw {
			out[i] = append([]bool(nil), row...)
		}
		return out
	}

	w := 0
	if len(raw) > 0 {
		w = len(raw[0])
	}
	padded := make([][]bool, 0, len(raw)+2*border)
	for i := 0; i < border; i++ {
		padded = append(padded, make([]bool, w+2*border))
	}
	for _, row := range raw {
		r := make([]bool, w+2*border)
		copy(r[border:], row)
		padded = append(padded, r)
	}
	for i := 0; i < border; i++ {
		padded = append(padded, make([]bool, w+2*border))
	}
	return padded
}

// BuildGrid encodes text and adds the quiet zone.
func BuildGrid(text string, opts MatrixOptions) (*Grid, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if opts.Version != 0 && (opts.Version < MinVersion || opts.Version > MaxVersion) {
		return nil, fmt.Errorf("%w: version must be in %d..%d, got %d", ErrInvalidOption, MinVersion, MaxVersion, opts.Version)
	}
	if opts.Border < 0 || opts.Border > MaxBorder {
		return nil, fmt.Errorf("%w: border must be in 0..%d, got %d", ErrInvalidOption, MaxBorder, opts.Border)
	}
	if opts.Level < LevelL || opts.Level > LevelH {
		return nil, fmt.Errorf("%w: unknown error correction level %d", ErrInvalidOption, int(opts.Level))
	}

	enc := opts.Encoder
	if enc == nil {
		enc = YeqownEncoder
	}

	raw, err := enc.Encode(text, opts.Level, opts.Version)
	if err != nil {
		return nil, err
	}
	if opts.Version != 0 && len(raw) != symbolSize(opts.Version) {
		return nil, fmt.Errorf("%w: version %d needs %d modules, encoder produced %d",
			ErrPayloadTooLarge, opts.Version, symbolSize(opts.Version), len(raw))
	}

	return NewGrid(PadGrid(raw, opts.Border))
}
