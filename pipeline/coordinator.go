// Package pipeline wires a capture session to filter chains and a
// preview renderer, and keeps the last processed frame for stills.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/camerafilter/capture"
	"github.com/xaionaro-go/camerafilter/filter"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/preset"
	"github.com/xaionaro-go/camerafilter/render"
	"github.com/xaionaro-go/camerafilter/types"
	"github.com/xaionaro-go/xsync"
)

// CaptureSession is the part of capture.Session the Coordinator drives.
type CaptureSession interface {
	OnFrame(capture.FrameCallback)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	SwitchPosition(ctx context.Context) error
	Position() types.DevicePosition
	State() capture.State
	IsRunning() bool
}

var _ CaptureSession = (*capture.Session)(nil)

// Coordinator owns the current filter selection and the last captured
// frame. Image processing never happens under Locker.
type Coordinator struct {
	Session  CaptureSession
	Catalog  *preset.Catalog
	Backend  imageprocessor.Backend
	Renderer render.Renderer

	Locker        xsync.Mutex
	currentFilter preset.Entry
	lastFrame     *frame.Buffer

	Counters Counters
}

// New registers the Coordinator as the frame sink of the session.
func New(
	ctx context.Context,
	session CaptureSession,
	backend imageprocessor.Backend,
	renderer render.Renderer,
	opts ...Option,
) (*Coordinator, error) {
	cfg := Options(opts).config()
	entry, err := cfg.Catalog.Get(cfg.InitialFilter)
	if err != nil {
		return nil, fmt.Errorf("unable to get the initial filter: %w", err)
	}
	if renderer == nil {
		renderer = render.Discard{}
	}
	c := &Coordinator{
		Session:       session,
		Catalog:       cfg.Catalog,
		Backend:       backend,
		Renderer:      renderer,
		currentFilter: entry,
	}
	session.OnFrame(c.handleFrame)
	logger.Debugf(ctx, "initialized the coordinator with filter %s, backend %s and renderer %v", entry.ID, backend, renderer)
	return c, nil
}

// handleFrame is the frame sink: the session guarantees at most one
// call at a time, in capture order.
func (c *Coordinator) handleFrame(ctx context.Context, raw *frame.Buffer) {
	out, err := c.OnFrame(ctx, raw)
	if err != nil {
		logger.Debugf(ctx, "dropped the frame: %v", err)
		return
	}
	if err := c.Renderer.Render(ctx, out); err != nil {
		c.Counters.RenderErrors.Inc()
		logger.Errorf(ctx, "unable to render %s: %v", out, err)
		return
	}
	c.Counters.Rendered.Inc()
}

// OnFrame filters the raw frame with the current filter, remembers the
// result as the last captured frame and returns it for rendering.
// It takes ownership of raw. Filter failures drop the frame and leave
// the last captured frame untouched.
func (c *Coordinator) OnFrame(
	ctx context.Context,
	raw *frame.Buffer,
) (_ret *frame.Buffer, _err error) {
	logger.Tracef(ctx, "OnFrame(ctx, %s)", raw)
	defer func() { logger.Tracef(ctx, "/OnFrame(ctx, %s): %v", raw, _err) }()
	defer raw.Release()
	c.Counters.Received.Inc()

	entry := xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.Locker, func() preset.Entry {
		return c.currentFilter
	})

	out, err := filter.Apply(ctx, c.Backend, entry.Chain, raw)
	if err != nil {
		c.Counters.Failed.Inc()
		if errors.As(err, &imageprocessor.ErrFilterUnavailable{}) || errors.As(err, &imageprocessor.ErrEmptyOutput{}) {
			logger.Warnf(ctx, "filter '%s' failed: %v", entry.ID, err)
		} else {
			logger.Errorf(ctx, "filter '%s' failed: %v", entry.ID, err)
		}
		return nil, fmt.Errorf("unable to apply filter '%s': %w", entry.ID, err)
	}

	snapshot := out.Clone()
	c.Locker.Do(xsync.WithNoLogging(ctx, true), func() {
		c.lastFrame = snapshot
	})
	c.Counters.Processed.Inc()
	return out, nil
}

// SetFilter selects the filter for the next frames; frames already
// processed are not affected.
func (c *Coordinator) SetFilter(
	ctx context.Context,
	id preset.ID,
) (_ret preset.Entry, _err error) {
	logger.Debugf(ctx, "SetFilter(ctx, %s)", id)
	defer func() { logger.Debugf(ctx, "/SetFilter(ctx, %s): %v", id, _err) }()
	entry, err := c.Catalog.Get(id)
	if err != nil {
		return preset.Entry{}, err
	}
	c.Locker.Do(ctx, func() {
		c.currentFilter = entry
	})
	return entry, nil
}

func (c *Coordinator) CurrentFilter() preset.ID {
	ctx := context.Background()
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.Locker, func() preset.ID {
		return c.currentFilter.ID
	})
}

// TakePhoto stops the session and returns a copy of the last processed
// frame. The session stays stopped until ResumePreview, unless there
// was no frame: then it is resumed and ErrNoFrameAvailable is returned.
func (c *Coordinator) TakePhoto(
	ctx context.Context,
) (_ret *frame.Buffer, _err error) {
	logger.Debugf(ctx, "TakePhoto")
	defer func() { logger.Debugf(ctx, "/TakePhoto: %s %v", _ret, _err) }()

	wasRunning := c.Session.IsRunning()
	if err := c.Session.Stop(ctx); err != nil {
		return nil, fmt.Errorf("unable to stop the capture session: %w", err)
	}

	photo := xsync.DoR1(ctx, &c.Locker, func() *frame.Buffer {
		if c.lastFrame == nil {
			return nil
		}
		return c.lastFrame.Clone()
	})
	if photo == nil {
		if wasRunning {
			if err := c.Session.Start(ctx); err != nil {
				logger.Errorf(ctx, "unable to restart the capture session: %v", err)
			}
		}
		return nil, ErrNoFrameAvailable{}
	}
	c.Counters.Photos.Inc()
	return photo, nil
}

func (c *Coordinator) Start(ctx context.Context) error {
	return c.Session.Start(ctx)
}

// ResumePreview restarts the session after TakePhoto.
func (c *Coordinator) ResumePreview(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "ResumePreview")
	defer func() { logger.Debugf(ctx, "/ResumePreview: %v", _err) }()
	return c.Session.Start(ctx)
}

// SwitchCamera toggles between the front and the back camera; it
// returns the position in effect afterwards.
func (c *Coordinator) SwitchCamera(
	ctx context.Context,
) (_ret types.DevicePosition, _err error) {
	logger.Debugf(ctx, "SwitchCamera")
	defer func() { logger.Debugf(ctx, "/SwitchCamera: %s %v", _ret, _err) }()
	err := c.Session.SwitchPosition(ctx)
	return c.Session.Position(), err
}

func (c *Coordinator) Position() types.DevicePosition {
	return c.Session.Position()
}

func (c *Coordinator) GetStats() Statistics {
	stats := c.Counters.ToStats()
	stats.Filter = c.CurrentFilter().String()
	stats.Position = c.Session.Position().String()
	return stats
}
