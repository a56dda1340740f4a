package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/types"
)

// Orientation rotates (and, for the front camera, mirrors) frames
// before passing them to the next renderer. Angles are clockwise
// degrees; negative angles rotate counter-clockwise.
type Orientation struct {
	Next          Renderer
	RotateDegrees float64
	MirrorFront   bool
}

var _ Renderer = (*Orientation)(nil)

func (o *Orientation) String() string {
	return fmt.Sprintf("Orientation(%v°, mirrorFront:%t) -> %v", o.RotateDegrees, o.MirrorFront, o.Next)
}

func (o *Orientation) Render(ctx context.Context, f *frame.Buffer) error {
	mirror := o.MirrorFront && f.Position == types.DevicePositionFront
	angle := normalizeDegrees(o.RotateDegrees)
	if angle == 0 && !mirror {
		return o.Next.Render(ctx, f)
	}

	img, err := f.Image()
	if err != nil {
		return err
	}
	var out image.Image = img
	if mirror {
		out = imaging.FlipH(out)
	}
	switch angle {
	case 0:
	case 90:
		out = imaging.Rotate270(out)
	case 180:
		out = imaging.Rotate180(out)
	case 270:
		out = imaging.Rotate90(out)
	default:
		// imaging rotates counter-clockwise
		out = imaging.Rotate(out, -angle, color.Black)
	}

	return o.Next.Render(ctx, frame.FromImage(out, f.Metadata))
}

// normalizeDegrees maps the angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
