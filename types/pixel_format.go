package types

import (
	"fmt"
)

type PixelFormat int

const (
	PixelFormatUndefined PixelFormat = iota
	PixelFormatRGBA
	PixelFormatGray
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatUndefined:
		return "undefined"
	case PixelFormatRGBA:
		return "rgba"
	case PixelFormatGray:
		return "gray"
	default:
		return fmt.Sprintf("unknown_%d_", int(f))
	}
}

// BytesPerPixel returns 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA:
		return 4
	case PixelFormatGray:
		return 1
	default:
		return 0
	}
}
