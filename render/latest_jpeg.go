package render

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/types"
	"github.com/xaionaro-go/xsync"
	"golang.org/x/image/draw"
)

const (
	DefaultJPEGQuality = 80
)

// LatestJPEG keeps the JPEG encoding of the last rendered frame.
type LatestJPEG struct {
	MaxWidth    int
	JPEGQuality int

	Locker     xsync.Mutex
	latest     []byte
	sequence   uint64
	changeChan *chan struct{}

	Encoded types.CountersItem
}

var _ Renderer = (*LatestJPEG)(nil)

// NewLatestJPEG downscales frames wider than maxWidth (if positive)
// keeping the aspect ratio.
func NewLatestJPEG(maxWidth, quality int) *LatestJPEG {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &LatestJPEG{
		MaxWidth:    maxWidth,
		JPEGQuality: quality,
		changeChan:  ptr(make(chan struct{})),
	}
}

func (l *LatestJPEG) String() string {
	return fmt.Sprintf("LatestJPEG(maxWidth:%d, quality:%d)", l.MaxWidth, l.JPEGQuality)
}

func (l *LatestJPEG) Render(ctx context.Context, f *frame.Buffer) error {
	img, err := f.Image()
	if err != nil {
		return err
	}
	img = downscale(img, l.MaxWidth)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(l.JPEGQuality)); err != nil {
		return fmt.Errorf("unable to encode %s as JPEG: %w", f, err)
	}
	encoded := buf.Bytes()
	l.Encoded.Increment(uint64(len(encoded)))

	l.Locker.Do(xsync.WithNoLogging(ctx, true), func() {
		l.latest = encoded
		l.sequence = f.Sequence
		close(*xatomic.SwapPointer(&l.changeChan, ptr(make(chan struct{}))))
	})
	return nil
}

// Latest returns the last encoded frame and its sequence number; the
// returned slice must not be modified.
func (l *LatestJPEG) Latest() ([]byte, uint64) {
	ctx := context.Background()
	var (
		jpeg []byte
		seq  uint64
	)
	l.Locker.Do(xsync.WithNoLogging(ctx, true), func() {
		jpeg, seq = l.latest, l.sequence
	})
	return jpeg, seq
}

// ChangeChan is closed on the next Render.
func (l *LatestJPEG) ChangeChan() <-chan struct{} {
	return *xatomic.LoadPointer(&l.changeChan)
}

func downscale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func ptr[T any](v T) *T {
	return &v
}
