package photo

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

type Format int

const (
	FormatUndefined = Format(iota)
	FormatJPEG
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "undefined"
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return fmt.Sprintf("unknown_%d_", int(f))
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	default:
		return ""
	}
}

func (f Format) imagingFormat() (imaging.Format, error) {
	switch f {
	case FormatJPEG:
		return imaging.JPEG, nil
	case FormatPNG:
		return imaging.PNG, nil
	default:
		return 0, fmt.Errorf("unsupported photo format: %s", f)
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return FormatUndefined, fmt.Errorf("unknown photo format '%s'", s)
	}
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
