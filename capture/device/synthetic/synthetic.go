// Package synthetic provides cameras that produce a moving gradient test
// pattern at a fixed frame rate.
package synthetic

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/helpers/closuresignaler"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/types"
	"go.uber.org/atomic"
)

type Provider struct {
	Resolution types.Resolution
	FrameRate  types.Rational
	Positions  []types.DevicePosition
	BufferPool *frame.BufferPool
}

var _ capture.DeviceProvider = (*Provider)(nil)

// NewProvider returns a provider with both a back and a front camera.
func NewProvider(
	resolution types.Resolution,
	frameRate types.Rational,
) *Provider {
	return &Provider{
		Resolution: resolution,
		FrameRate:  frameRate,
		Positions:  []types.DevicePosition{types.DevicePositionBack, types.DevicePositionFront},
		BufferPool: frame.Pool,
	}
}

func (p *Provider) OpenDevice(
	ctx context.Context,
	position types.DevicePosition,
) (capture.Device, error) {
	logger.Debugf(ctx, "OpenDevice(ctx, %s)", position)
	found := false
	for _, pos := range p.Positions {
		if pos == position {
			found = true
			break
		}
	}
	if !found {
		return nil, capture.ErrDeviceUnavailable{Position: position}
	}
	if p.Resolution.IsZero() {
		return nil, fmt.Errorf("resolution is not set")
	}
	interval := p.FrameRate.Interval()
	if interval <= 0 {
		return nil, fmt.Errorf("invalid frame rate: %s", p.FrameRate)
	}
	return &Device{
		ClosureSignaler: closuresignaler.New(),
		position:        position,
		resolution:      p.Resolution,
		interval:        interval,
		pool:            p.BufferPool,
		nextAt:          time.Now(),
	}, nil
}

// Device is a synthetic camera. It is not safe for concurrent ReadFrame calls.
type Device struct {
	*closuresignaler.ClosureSignaler
	position   types.DevicePosition
	resolution types.Resolution
	interval   time.Duration
	pool       *frame.BufferPool
	nextAt     time.Time
	sequence   atomic.Uint64
}

var _ capture.Device = (*Device)(nil)

func (d *Device) String() string {
	return fmt.Sprintf("synthetic(%s, %s, %v)", d.position, d.resolution, d.interval)
}

func (d *Device) Position() types.DevicePosition {
	return d.position
}

func (d *Device) Close(ctx context.Context) error {
	d.ClosureSignaler.Close(ctx)
	return nil
}

func (d *Device) ReadFrame(ctx context.Context) (*frame.Buffer, error) {
	if wait := time.Until(d.nextAt); wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-d.CloseChan():
			return nil, io.EOF
		case <-t.C:
		}
	} else if d.IsClosed() {
		return nil, io.EOF
	}
	now := time.Now()
	d.nextAt = d.nextAt.Add(d.interval)
	if d.nextAt.Before(now) {
		// we are late, do not try to catch up
		d.nextAt = now.Add(d.interval)
	}

	seq := d.sequence.Inc()
	f := d.pool.Get(int(d.resolution.Width), int(d.resolution.Height), types.PixelFormatRGBA)
	f.Timestamp = now
	f.Position = d.position
	f.Sequence = seq
	Draw(f, seq)
	return f, nil
}

// Draw paints the test pattern for the given sequence number into an
// RGBA frame: a diagonal gradient scrolling one pixel per frame, with
// the blue channel telling the camera position apart.
func Draw(f *frame.Buffer, seq uint64) {
	var blue uint8
	switch f.Position {
	case types.DevicePositionBack:
		blue = 64
	case types.DevicePositionFront:
		blue = 192
	}
	w, h := f.Width, f.Height
	stride := f.Stride()
	for y := 0; y < h; y++ {
		row := f.Pix[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			i := x * 4
			row[i+0] = uint8((uint64(x)*255/uint64(max(w-1, 1)) + seq) % 256)
			row[i+1] = uint8(y * 255 / max(h-1, 1))
			row[i+2] = blue
			row[i+3] = 255
		}
	}
}
