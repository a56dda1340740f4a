package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-ng/xatomic"
	"github.com/xaionaro-go/camerafilter/helpers/closuresignaler"
	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/types"
	"github.com/xaionaro-go/xsync"
)

// Session owns a camera device and delivers its frames to the
// registered callback, at most one frame at a time.
//
// Lock order: ConfigLocker, then Locker. Locker is never held across
// device I/O or the frame callback.
type Session struct {
	*closuresignaler.ClosureSignaler
	Provider DeviceProvider
	Config   config

	// ConfigLocker serializes configuration transactions, so concurrent
	// Configure/SwitchPosition calls queue instead of interleaving.
	ConfigLocker xsync.Mutex

	Locker      xsync.Mutex
	targetState State
	configuring bool
	position    types.DevicePosition
	device      Device
	generation  uint64
	callback    FrameCallback

	workerStarted bool
	workerCancel  context.CancelFunc
	workerDone    chan struct{}

	// deliverySlot is held while a frame is inside the callback.
	deliverySlot chan struct{}
	changeChan   *chan struct{}

	Counters Counters
}

func NewSession(
	provider DeviceProvider,
	opts ...Option,
) *Session {
	return &Session{
		ClosureSignaler: closuresignaler.New(),
		Provider:        provider,
		Config:          Options(opts).config(),
		targetState:     StateIdle,
		workerDone:      make(chan struct{}),
		deliverySlot:    make(chan struct{}, 1),
		changeChan:      ptr(make(chan struct{})),
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("CaptureSession(%s)", s.Position())
}

// OnFrame registers the frame sink, replacing the previous one.
func (s *Session) OnFrame(callback FrameCallback) {
	ctx := context.Background()
	s.Locker.Do(xsync.WithNoLogging(ctx, true), func() {
		s.callback = callback
	})
}

func (s *Session) State() State {
	ctx := context.Background()
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.Locker, s.stateLocked)
}

func (s *Session) stateLocked() State {
	switch {
	case s.IsClosed():
		return StateClosed
	case s.configuring:
		return StateConfiguring
	default:
		return s.targetState
	}
}

// IsRunning reports whether the session was started and not stopped
// since, regardless of an in-progress reconfiguration.
func (s *Session) IsRunning() bool {
	ctx := context.Background()
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.Locker, func() bool {
		return !s.IsClosed() && s.targetState == StateRunning
	})
}

// Position returns the position of the last successfully bound device.
func (s *Session) Position() types.DevicePosition {
	ctx := context.Background()
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &s.Locker, func() types.DevicePosition {
		return s.position
	})
}

func (s *Session) GetStats() Statistics {
	ctx := context.Background()
	stats := s.Counters.ToStats()
	s.Locker.Do(xsync.WithNoLogging(ctx, true), func() {
		stats.State = s.stateLocked()
		stats.Position = s.position.String()
	})
	return stats
}

func (s *Session) notifyChangeLocked() {
	close(*xatomic.SwapPointer(&s.changeChan, ptr(make(chan struct{}))))
}

func (s *Session) getChangeChanLocked() <-chan struct{} {
	return *xatomic.LoadPointer(&s.changeChan)
}

// Close stops the worker and closes the device. The session cannot be
// used afterwards.
func (s *Session) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()

	var (
		device        Device
		workerStarted bool
		alreadyClosed bool
	)
	s.ConfigLocker.Do(xsync.WithEnableDeadlock(ctx, false), func() {
		s.Locker.Do(ctx, func() {
			if s.IsClosed() {
				alreadyClosed = true
				return
			}
			s.ClosureSignaler.Close(ctx)
			s.targetState = StateStopped
			device, s.device = s.device, nil
			s.generation++
			workerStarted = s.workerStarted
			if s.workerCancel != nil {
				s.workerCancel()
			}
			s.notifyChangeLocked()
		})
	})
	if alreadyClosed {
		return ErrSessionClosed{}
	}

	var result []error
	if device != nil {
		if err := device.Close(ctx); err != nil {
			result = append(result, fmt.Errorf("unable to close %s: %w", device, err))
		}
	}
	if workerStarted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.workerDone:
		}
	}
	if err := s.waitForDelivery(ctx); err != nil {
		result = append(result, err)
	}
	return errors.Join(result...)
}
