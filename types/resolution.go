package types

import (
	"fmt"
)

type Resolution struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

func (r Resolution) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

func ParseResolution(s string) (Resolution, error) {
	var r Resolution
	if _, err := fmt.Sscanf(s, "%dx%d", &r.Width, &r.Height); err != nil {
		return Resolution{}, fmt.Errorf("unable to parse resolution %q: %w", s, err)
	}
	if r.IsZero() {
		return Resolution{}, fmt.Errorf("resolution %q has a zero dimension", s)
	}
	return r, nil
}
