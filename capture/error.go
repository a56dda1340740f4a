package capture

import (
	"fmt"

	"github.com/xaionaro-go/camerafilter/types"
)

type ErrDeviceUnavailable struct {
	Position types.DevicePosition
	Err      error
}

func (e ErrDeviceUnavailable) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no camera available at position '%s'", e.Position)
	}
	return fmt.Sprintf("no camera available at position '%s': %v", e.Position, e.Err)
}

func (e ErrDeviceUnavailable) Unwrap() error {
	return e.Err
}

type ErrSessionClosed struct{}

func (ErrSessionClosed) Error() string {
	return "the capture session is closed"
}

// ErrNotConfigured is returned by SwitchPosition when there is no
// position to switch from.
type ErrNotConfigured struct{}

func (ErrNotConfigured) Error() string {
	return "the capture session was never configured"
}
