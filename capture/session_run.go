package capture

import (
	"context"
	"time"

	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
)

// Start makes the session deliver frames. Camera I/O runs on a
// background worker; calling Start on a running session is a no-op.
func (s *Session) Start(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Start")
	defer func() { logger.Debugf(ctx, "/Start: %v", _err) }()
	return xsync.DoA1R1(ctx, &s.Locker, s.startLocked, ctx)
}

func (s *Session) startLocked(ctx context.Context) error {
	if s.IsClosed() {
		return ErrSessionClosed{}
	}
	if s.targetState == StateRunning {
		return nil
	}
	s.targetState = StateRunning
	s.notifyChangeLocked()
	if s.workerStarted {
		return nil
	}
	s.workerStarted = true
	ctx, cancelFn := context.WithCancel(xcontext.DetachDone(ctx))
	s.workerCancel = cancelFn
	observability.Go(ctx, func(ctx context.Context) {
		defer close(s.workerDone)
		s.worker(ctx)
	})
	return nil
}

// Stop makes the session discard frames. It returns after the frame
// being delivered (if any) is out of the callback, so once Stop returns
// the callback is not running and will not be called until Start.
func (s *Session) Stop(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Stop")
	defer func() { logger.Debugf(ctx, "/Stop: %v", _err) }()
	if err := xsync.DoR1(ctx, &s.Locker, func() error {
		if s.IsClosed() {
			return ErrSessionClosed{}
		}
		s.targetState = StateStopped
		s.notifyChangeLocked()
		return nil
	}); err != nil {
		return err
	}
	return s.waitForDelivery(ctx)
}

func (s *Session) waitForDelivery(ctx context.Context) error {
	select {
	case s.deliverySlot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	<-s.deliverySlot
	return nil
}

type workerSnapshot struct {
	device     Device
	generation uint64
	running    bool
	changeChan <-chan struct{}
}

func (s *Session) worker(ctx context.Context) {
	logger.Debugf(ctx, "worker")
	defer func() { logger.Debugf(ctx, "/worker") }()
	for {
		snap := xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.Locker, func() workerSnapshot {
			return workerSnapshot{
				device:     s.device,
				generation: s.generation,
				running:    s.targetState == StateRunning && !s.configuring,
				changeChan: s.getChangeChanLocked(),
			}
		})
		if s.IsClosed() {
			return
		}

		if !snap.running || snap.device == nil {
			select {
			case <-ctx.Done():
				return
			case <-snap.changeChan:
			}
			continue
		}

		f, err := snap.device.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.Counters.ReadErrors.Inc()
			logger.Debugf(ctx, "unable to read a frame from %s: %v", snap.device, err)
			t := time.NewTimer(s.Config.ReadRetryInterval)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-snap.changeChan:
			case <-t.C:
			}
			t.Stop()
			continue
		}
		s.Counters.Captured.Inc()
		s.dispatch(ctx, f, snap)
	}
}

// dispatch hands the frame over to the callback unless the frame is
// stale (read from a device that is no longer bound) or the callback is
// still busy with the previous frame.
func (s *Session) dispatch(
	ctx context.Context,
	f *frame.Buffer,
	snap workerSnapshot,
) {
	callback := xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.Locker, func() FrameCallback {
		switch {
		case s.targetState != StateRunning,
			s.configuring,
			s.generation != snap.generation,
			s.device != snap.device,
			s.position != f.Position,
			s.callback == nil:
			s.Counters.Discarded.Inc()
			return nil
		}
		select {
		case s.deliverySlot <- struct{}{}:
		default:
			s.Counters.DroppedBusy.Inc()
			return nil
		}
		return s.callback
	})
	if callback == nil {
		logger.Tracef(ctx, "dropped %s", f)
		f.Release()
		return
	}

	s.Counters.Delivered.Inc()
	observability.Go(ctx, func(ctx context.Context) {
		defer func() { <-s.deliverySlot }()
		callback(ctx, f)
	})
}
