// device.go defines the camera abstraction a Session binds to.

// Package capture implements the capture session: it owns the camera
// device, the running/stopped lifecycle and the device position, and
// delivers raw frames to a single sink from a background worker.
package capture

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/types"
)

// Device is an opened camera.
type Device interface {
	fmt.Stringer
	types.Closer

	Position() types.DevicePosition

	// ReadFrame blocks until the next frame is available. It must return
	// once the device is closed or the context is cancelled.
	// Ownership of the returned frame passes to the caller.
	ReadFrame(ctx context.Context) (*frame.Buffer, error)
}

// DeviceProvider opens the camera for a position. It returns
// ErrDeviceUnavailable if no camera matches.
type DeviceProvider interface {
	OpenDevice(ctx context.Context, position types.DevicePosition) (Device, error)
}

type DeviceProviderFunc func(ctx context.Context, position types.DevicePosition) (Device, error)

func (fn DeviceProviderFunc) OpenDevice(
	ctx context.Context,
	position types.DevicePosition,
) (Device, error) {
	return fn(ctx, position)
}

// FrameCallback receives ownership of a frame: it must Release it (or
// hand it over) when done.
type FrameCallback func(ctx context.Context, f *frame.Buffer)
