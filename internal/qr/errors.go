package qr

import "errors"

// Package-level error definitions for QR rendering.
var (
	ErrInvalidOption     = errors.New("invalid option")
	ErrEmptyText         = errors.New("text to encode is empty")
	ErrPayloadTooLarge   = errors.New("payload does not fit the requested version")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
