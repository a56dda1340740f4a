// frame.go defines Buffer, a single decoded video frame.

// Package frame provides the video frame type passed through the capture
// session, the filter chains and the renderers.
package frame

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/xaionaro-go/camerafilter/types"
)

// Metadata is everything a Buffer carries besides its pixels.
type Metadata struct {
	Timestamp time.Time
	Position  types.DevicePosition
	Sequence  uint64
}

// Buffer is one decoded video frame. Pixels are tightly packed rows
// (stride = Width * bytes-per-pixel) starting at the top-left corner.
type Buffer struct {
	Metadata
	Pix         []byte
	Width       int
	Height      int
	PixelFormat types.PixelFormat

	pool *BufferPool
}

// New allocates a zeroed buffer that does not belong to any pool.
func New(width, height int, pixFmt types.PixelFormat) *Buffer {
	return &Buffer{
		Pix:         make([]byte, width*height*pixFmt.BytesPerPixel()),
		Width:       width,
		Height:      height,
		PixelFormat: pixFmt,
	}
}

func (b *Buffer) String() string {
	if b == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Frame(#%d %dx%d %s %s)", b.Sequence, b.Width, b.Height, b.PixelFormat, b.Position)
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) Resolution() types.Resolution {
	return types.Resolution{Width: uint32(b.Width), Height: uint32(b.Height)}
}

func (b *Buffer) Stride() int {
	return b.Width * b.PixelFormat.BytesPerPixel()
}

// Size returns the amount of bytes taken by pixels.
func (b *Buffer) Size() uint64 {
	return uint64(len(b.Pix))
}

// Image returns a view on the pixels; modifying the image modifies the buffer.
func (b *Buffer) Image() (image.Image, error) {
	switch b.PixelFormat {
	case types.PixelFormatRGBA:
		return b.rgbaView(), nil
	case types.PixelFormatGray:
		return &image.Gray{Pix: b.Pix, Stride: b.Stride(), Rect: b.Bounds()}, nil
	default:
		return nil, fmt.Errorf("pixel format %s is not supported", b.PixelFormat)
	}
}

// RGBA returns the frame as an RGBA image. For RGBA buffers this is a view
// sharing the pixels, for other formats it is a converted copy.
func (b *Buffer) RGBA() (*image.RGBA, error) {
	if b.PixelFormat == types.PixelFormatRGBA {
		return b.rgbaView(), nil
	}
	img, err := b.Image()
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(b.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst, nil
}

func (b *Buffer) rgbaView() *image.RGBA {
	return &image.RGBA{Pix: b.Pix, Stride: b.Stride(), Rect: b.Bounds()}
}

// Clone returns an independent copy that does not belong to any pool,
// so releasing either side never affects the other one.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		Metadata:    b.Metadata,
		Pix:         make([]byte, len(b.Pix)),
		Width:       b.Width,
		Height:      b.Height,
		PixelFormat: b.PixelFormat,
	}
	copy(c.Pix, b.Pix)
	return c
}

// Equal reports whether both buffers have the same geometry, format and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Width == other.Width &&
		b.Height == other.Height &&
		b.PixelFormat == other.PixelFormat &&
		bytes.Equal(b.Pix, other.Pix)
}

// Release returns pooled buffers to their pool; it is a no-op otherwise.
// The buffer must not be used after Release.
func (b *Buffer) Release() {
	if b == nil || b.pool == nil {
		return
	}
	b.pool.put(b)
}

// FromImage converts an image into a new RGBA buffer. The image's top-left
// corner becomes the buffer's origin.
func FromImage(img image.Image, md Metadata) *Buffer {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy(), types.PixelFormatRGBA)
	b.Metadata = md
	dst := b.rgbaView()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*bounds.Dx() {
		copy(dst.Pix, rgba.Pix[rgba.PixOffset(bounds.Min.X, bounds.Min.Y):])
		return b
	}
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return b
}

// Fill paints the whole frame with a single color; it is mostly useful
// for test patterns.
func (b *Buffer) Fill(c color.Color) error {
	img, err := b.Image()
	if err != nil {
		return err
	}
	draw.Draw(img.(draw.Image), img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}
