//go:build with_cv
// +build with_cv

package cvcamera

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/types"
	"go.uber.org/atomic"
	"github.com/xaionaro-go/xsync"
	"gocv.io/x/gocv"
)

type Provider struct {
	Resolution types.Resolution
	FrameRate  types.Rational
	BufferPool *frame.BufferPool
}

var _ capture.DeviceProvider = (*Provider)(nil)

func NewProvider(
	resolution types.Resolution,
	frameRate types.Rational,
) *Provider {
	return &Provider{
		Resolution: resolution,
		FrameRate:  frameRate,
		BufferPool: frame.Pool,
	}
}

func (p *Provider) OpenDevice(
	ctx context.Context,
	position types.DevicePosition,
) (_ret capture.Device, _err error) {
	logger.Debugf(ctx, "OpenDevice(ctx, %s)", position)
	defer func() { logger.Debugf(ctx, "/OpenDevice(ctx, %s): %v", position, _err) }()
	if !position.IsValid() {
		return nil, capture.ErrDeviceUnavailable{Position: position}
	}
	idx := position.CameraIndex()
	vc, err := gocv.OpenVideoCapture(idx)
	if err != nil {
		return nil, capture.ErrDeviceUnavailable{Position: position, Err: err}
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, capture.ErrDeviceUnavailable{Position: position, Err: fmt.Errorf("camera #%d is not opened", idx)}
	}
	if !p.Resolution.IsZero() {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(p.Resolution.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(p.Resolution.Height))
	}
	if fps := p.FrameRate.Float64(); fps > 0 {
		vc.Set(gocv.VideoCaptureFPS, fps)
	}
	return &Device{
		position: position,
		index:    idx,
		capture:  vc,
		raw:      gocv.NewMat(),
		rgba:     gocv.NewMat(),
		pool:     p.BufferPool,
	}, nil
}

// Device is an OpenCV camera. Close waits for an in-progress read.
type Device struct {
	locker   xsync.Mutex
	closed   bool
	position types.DevicePosition
	index    int
	capture  *gocv.VideoCapture
	raw      gocv.Mat
	rgba     gocv.Mat
	pool     *frame.BufferPool
	sequence atomic.Uint64
}

var _ capture.Device = (*Device)(nil)

func (d *Device) String() string {
	return fmt.Sprintf("cvcamera(#%d, %s)", d.index, d.position)
}

func (d *Device) Position() types.DevicePosition {
	return d.position
}

func (d *Device) Close(ctx context.Context) error {
	return xsync.DoR1(xsync.WithEnableDeadlock(ctx, false), &d.locker, func() error {
		if d.closed {
			return nil
		}
		d.closed = true
		d.raw.Close()
		d.rgba.Close()
		return d.capture.Close()
	})
}

func (d *Device) ReadFrame(ctx context.Context) (*frame.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return xsync.DoR2(xsync.WithNoLogging(xsync.WithEnableDeadlock(ctx, false), true), &d.locker, d.readFrameLocked)
}

func (d *Device) readFrameLocked() (*frame.Buffer, error) {
	if d.closed {
		return nil, io.EOF
	}
	if !d.capture.Read(&d.raw) || d.raw.Empty() {
		return nil, fmt.Errorf("unable to read a frame from camera #%d", d.index)
	}
	if err := gocv.CvtColor(d.raw, &d.rgba, gocv.ColorBGRToRGBA); err != nil {
		return nil, fmt.Errorf("unable to convert the frame to RGBA: %w", err)
	}
	w, h := d.rgba.Cols(), d.rgba.Rows()
	pix := d.rgba.ToBytes()
	f := d.pool.Get(w, h, types.PixelFormatRGBA)
	if len(pix) < len(f.Pix) {
		f.Release()
		return nil, fmt.Errorf("unexpected frame data size: %d < %d", len(pix), len(f.Pix))
	}
	copy(f.Pix, pix)
	f.Timestamp = time.Now()
	f.Position = d.position
	f.Sequence = d.sequence.Inc()
	return f, nil
}
