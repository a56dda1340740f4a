package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/camerafilter/logger"
	"github.com/xaionaro-go/camerafilter/types"
	"github.com/xaionaro-go/xsync"
)

// Configure binds the camera at the given position, tearing down the
// current device first. It may be called while the session is running:
// no frame is delivered until the new device is committed, and frames
// read from the previous device are discarded.
//
// On failure the session is left without a device at its previous position.
func (s *Session) Configure(
	ctx context.Context,
	position types.DevicePosition,
) (_err error) {
	logger.Debugf(ctx, "Configure(ctx, %s)", position)
	defer func() { logger.Debugf(ctx, "/Configure(ctx, %s): %v", position, _err) }()
	return xsync.DoA2R1(xsync.WithEnableDeadlock(ctx, false), &s.ConfigLocker, s.configureLocked, ctx, position)
}

// SwitchPosition reconfigures the session to the opposite position.
// Concurrent calls are applied one after another, each toggling from the
// position the previous one committed.
func (s *Session) SwitchPosition(
	ctx context.Context,
) (_err error) {
	logger.Debugf(ctx, "SwitchPosition")
	defer func() { logger.Debugf(ctx, "/SwitchPosition: %v", _err) }()
	return xsync.DoR1(xsync.WithEnableDeadlock(ctx, false), &s.ConfigLocker, func() error {
		cur := s.Position()
		if !cur.IsValid() {
			return ErrNotConfigured{}
		}
		return s.configureLocked(ctx, cur.Opposite())
	})
}

// SetPosition is Configure that skips the work if the position is
// already bound.
func (s *Session) SetPosition(
	ctx context.Context,
	position types.DevicePosition,
) (_err error) {
	logger.Debugf(ctx, "SetPosition(ctx, %s)", position)
	defer func() { logger.Debugf(ctx, "/SetPosition(ctx, %s): %v", position, _err) }()
	return xsync.DoR1(xsync.WithEnableDeadlock(ctx, false), &s.ConfigLocker, func() error {
		isBound := xsync.DoR1(ctx, &s.Locker, func() bool {
			return s.device != nil && s.position == position
		})
		if isBound {
			return nil
		}
		return s.configureLocked(ctx, position)
	})
}

func (s *Session) configureLocked(
	ctx context.Context,
	position types.DevicePosition,
) error {
	if !position.IsValid() {
		return fmt.Errorf("invalid device position: %s", position)
	}

	var oldDevice Device
	if err := xsync.DoR1(ctx, &s.Locker, func() error {
		if s.IsClosed() {
			return ErrSessionClosed{}
		}
		s.configuring = true
		s.generation++
		oldDevice, s.device = s.device, nil
		s.notifyChangeLocked()
		return nil
	}); err != nil {
		return err
	}

	if oldDevice != nil {
		logger.Debugf(ctx, "closing %s", oldDevice)
		if err := oldDevice.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close %s: %v", oldDevice, err)
		}
	}

	newDevice, err := s.openDevice(ctx, position)

	var closedMeanwhile bool
	s.Locker.Do(ctx, func() {
		s.configuring = false
		s.generation++
		defer s.notifyChangeLocked()
		if err != nil {
			return
		}
		if s.IsClosed() {
			closedMeanwhile = true
			return
		}
		s.device = newDevice
		s.position = position
		s.Counters.Configured.Inc()
	})
	if err != nil {
		return err
	}
	if closedMeanwhile {
		if err := newDevice.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close %s: %v", newDevice, err)
		}
		return ErrSessionClosed{}
	}
	return nil
}

func (s *Session) openDevice(
	ctx context.Context,
	position types.DevicePosition,
) (Device, error) {
	device, err := s.Provider.OpenDevice(ctx, position)
	if err != nil {
		if errors.As(err, &ErrDeviceUnavailable{}) {
			return nil, err
		}
		return nil, fmt.Errorf("unable to open the %s camera: %w", position, err)
	}
	if device.Position() != position {
		if err := device.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close %s: %v", device, err)
		}
		return nil, ErrDeviceUnavailable{
			Position: position,
			Err:      fmt.Errorf("the provider opened %s instead", device),
		}
	}
	return device, nil
}
