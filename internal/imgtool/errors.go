package imgtool

import "errors"

var (
	ErrDestinationExists = errors.New("destination exists")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNotTIFF           = errors.New("not a TIFF file")
)
