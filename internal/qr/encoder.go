package qr

import (
	"errors"
	"fmt"

	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
)

// Built-in encoders.
var (
	YeqownEncoder Encoder = yeqownEncoder{}
	Skip2Encoder  Encoder = skip2Encoder{}
)

type yeqownEncoder struct{}

func (e yeqownEncoder) Encode(text string, level Level, version int) ([][]bool, error) {
	if version == 0 {
		return e.encode(text, yeqownLevel(level))
	}

	// The smallest fitting symbol decides whether the forced version can
	// hold the payload at all.
	fit, err := e.encode(text, yeqownLevel(level))
	if err != nil {
		return nil, err
	}
	if len(fit) > symbolSize(version) {
		return nil, fmt.Errorf("%w: needs version %d or larger", ErrPayloadTooLarge, (len(fit)-17)/4)
	}
	if len(fit) == symbolSize(version) {
		return fit, nil
	}
	return e.encode(text, yeqownLevel(level), qrcode.WithVersion(version))
}

func (yeqownEncoder) encode(text string, opts ...qrcode.EncodeOption) ([][]bool, error) {
	qrc, err := qrcode.NewWith(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	capture := &matrixCapture{}
	if err := qrc.Save(capture); err != nil {
		return nil, fmt.Errorf("failed to build QR matrix: %w", err)
	}
	if capture.cells == nil {
		return nil, errors.New("encoder produced no matrix")
	}
	return capture.cells, nil
}

func yeqownLevel(l Level) qrcode.EncodeOption {
	switch l {
	case LevelL:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQ:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelH:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}

// matrixCapture implements qrcode.Writer by copying the module matrix
// instead of drawing it.
type matrixCapture struct {
	cells [][]bool
}

func (m *matrixCapture) Write(mat qrcode.Matrix) error {
	rows := mat.Height()
	cols := mat.Width()
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		cells[y][x] = v.IsSet()
	})
	m.cells = cells
	return nil
}

func (m *matrixCapture) Close() error { return nil }

type skip2Encoder struct{}

func (skip2Encoder) Encode(text string, level Level, version int) ([][]bool, error) {
	var (
		q   *skip2.QRCode
		err error
	)
	if version > 0 {
		q, err = skip2.NewWithForcedVersion(text, version, skip2Level(level))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
		}
	} else {
		q, err = skip2.New(text, skip2Level(level))
		if err != nil {
			return nil, fmt.Errorf("failed to create QR code: %w", err)
		}
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// skip2 names the levels by recovery capacity: High is Q, Highest is H.
func skip2Level(l Level) skip2.RecoveryLevel {
	switch l {
	case LevelL:
		return skip2.Low
	case LevelQ:
		return skip2.High
	case LevelH:
		return skip2.Highest
	default:
		return skip2.Medium
	}
}
