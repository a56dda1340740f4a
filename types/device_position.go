package types

import (
	"fmt"
	"strings"
)

// DevicePosition is which physical camera supplies the frames.
type DevicePosition int

const (
	DevicePositionUndefined DevicePosition = iota
	DevicePositionBack
	DevicePositionFront
)

func (p DevicePosition) String() string {
	switch p {
	case DevicePositionUndefined:
		return "undefined"
	case DevicePositionBack:
		return "back"
	case DevicePositionFront:
		return "front"
	default:
		return fmt.Sprintf("unknown_%d_", int(p))
	}
}

// Opposite returns the other camera; undefined stays undefined.
func (p DevicePosition) Opposite() DevicePosition {
	switch p {
	case DevicePositionBack:
		return DevicePositionFront
	case DevicePositionFront:
		return DevicePositionBack
	default:
		return DevicePositionUndefined
	}
}

func (p DevicePosition) IsValid() bool {
	return p == DevicePositionBack || p == DevicePositionFront
}

// CameraIndex returns the conventional capture device index for the
// position: the back camera is the first device, the front one the second.
func (p DevicePosition) CameraIndex() int {
	switch p {
	case DevicePositionBack:
		return 0
	case DevicePositionFront:
		return 1
	default:
		panic(fmt.Sprintf("cannot get a camera index for %s device position", p))
	}
}

func ParseDevicePosition(s string) (DevicePosition, error) {
	for _, p := range []DevicePosition{DevicePositionBack, DevicePositionFront} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return DevicePositionUndefined, fmt.Errorf("unknown device position %q (expected 'back' or 'front')", s)
}

func (p DevicePosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *DevicePosition) UnmarshalText(b []byte) error {
	v, err := ParseDevicePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Set implements pflag.Value.
func (p *DevicePosition) Set(s string) error {
	return p.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (p *DevicePosition) Type() string {
	return "position"
}
