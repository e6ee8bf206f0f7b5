package imgtool

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// TIFF compression codes accepted by readers without optional codecs.
const (
	CompressionNone     uint16 = 1
	CompressionPackBits uint16 = 32773
)

var compressionNames = map[uint16]string{
	1:     "NONE",
	2:     "CCITTRLE",
	3:     "CCITT_T4",
	4:     "CCITT_T6",
	5:     "LZW",
	6:     "OJPEG",
	7:     "JPEG",
	8:     "ADOBE_DEFLATE",
	32773: "PACKBITS",
	32946: "DEFLATE",
	34712: "JPEG2000",
	34925: "LZMA",
	50000: "ZSTD",
	50001: "WEBP",
}

// CompressionName returns the conventional name of a TIFF compression code.
func CompressionName(code uint16) string {
	if n, ok := compressionNames[code]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN(%d)", code)
}

// TIFFReport describes the first incompatible page of a TIFF file.
type TIFFReport struct {
	Path        string
	Page        int
	Compression uint16
}

func (r TIFFReport) String() string {
	return fmt.Sprintf("%s uses %s compression on page %d", r.Path, CompressionName(r.Compression), r.Page)
}

const (
	tagCompression = 259
	typeShort      = 3
	maxPages       = 1 << 16
)

// CheckTIFFCompression walks every page of the TIFF at path and returns a
// report for the first page compressed with anything other than None or
// PackBits. It returns nil when all pages are compatible.
func CheckTIFFCompression(path string) (*TIFFReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages, err := readCompressions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, c := range pages {
		if c != CompressionNone && c != CompressionPackBits {
			return &TIFFReport{Path: path, Page: i, Compression: c}, nil
		}
	}
	return nil, nil
}

// CheckTIFFGlob checks every file matching pattern, in name order.
func CheckTIFFGlob(pattern string) ([]TIFFReport, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var bad []TIFFReport
	for _, p := range paths {
		r, err := CheckTIFFCompression(p)
		if err != nil {
			return bad, err
		}
		if r != nil {
			bad = append(bad, *r)
		}
	}
	return bad, nil
}

// readCompressions returns the compression code of every IFD. A page
// without a Compression tag counts as uncompressed.
func readCompressions(r io.ReaderAt) ([]uint16, error) {
	var hdr [8]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrNotTIFF)
	}

	var order binary.ByteOrder
	switch string(hdr[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: bad byte order mark", ErrNotTIFF)
	}
	if magic := order.Uint16(hdr[2:4]); magic != 42 {
		return nil, fmt.Errorf("%w: magic %d", ErrNotTIFF, magic)
	}

	var pages []uint16
	seen := map[uint32]bool{}
	for off := order.Uint32(hdr[4:8]); off != 0; {
		if seen[off] || len(pages) >= maxPages {
			return nil, fmt.Errorf("%w: IFD loop at offset %d", ErrNotTIFF, off)
		}
		seen[off] = true

		var cnt [2]byte
		if _, err := r.ReadAt(cnt[:], int64(off)); err != nil {
			return nil, fmt.Errorf("%w: truncated IFD at %d", ErrNotTIFF, off)
		}
		n := int(order.Uint16(cnt[:]))
		buf := make([]byte, n*12+4)
		if _, err := r.ReadAt(buf, int64(off)+2); err != nil {
			return nil, fmt.Errorf("%w: truncated IFD at %d", ErrNotTIFF, off)
		}

		comp := CompressionNone
		for i := 0; i < n; i++ {
			e := buf[i*12 : i*12+12]
			if order.Uint16(e[0:2]) != tagCompression {
				continue
			}
			if order.Uint16(e[2:4]) == typeShort {
				comp = order.Uint16(e[8:10])
			} else {
				comp = uint16(order.Uint32(e[8:12]))
			}
		}
		pages = append(pages, comp)
		off = order.Uint32(buf[n*12:])
	}
	return pages, nil
}
