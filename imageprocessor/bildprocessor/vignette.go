package bildprocessor

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/parallel"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"go.uber.org/atomic"
)

const (
	defaultVignetteIntensity = 1.0
	defaultVignetteRadius    = 1.0
)

// Vignette darkens the image towards its corners. The distance from the
// center is normalized to [0..1] (center..corner); the darkening is
// intensity/2 * distance^radius.
type Vignette struct {
	Intensity atomic.Float64
	Radius    atomic.Float64
}

var _ imageprocessor.Operation = (*Vignette)(nil)

func NewVignette(intensity, radius float64) *Vignette {
	v := &Vignette{}
	v.Intensity.Store(intensity)
	v.Radius.Store(radius)
	return v
}

func (v *Vignette) String() string {
	return fmt.Sprintf("Vignette(intensity=%v, radius=%v)", v.Intensity.Load(), v.Radius.Load())
}

func (*Vignette) Kind() imageprocessor.Kind { return imageprocessor.KindVignette }

func (v *Vignette) validate() error {
	if v.Radius.Load() <= 0 {
		return fmt.Errorf("radius must be positive, got %v", v.Radius.Load())
	}
	if v.Intensity.Load() < 0 {
		return fmt.Errorf("intensity must not be negative, got %v", v.Intensity.Load())
	}
	return nil
}

func (v *Vignette) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(v.Kind(), inputs); err != nil {
		return nil, err
	}
	intensity := v.Intensity.Load()
	radius := v.Radius.Load()

	dst := clone.AsRGBA(inputs.Image)
	bounds := dst.Bounds()
	if bounds.Empty() {
		return dst, nil
	}
	cx := float64(bounds.Min.X) + float64(bounds.Dx()-1)/2
	cy := float64(bounds.Min.Y) + float64(bounds.Dy()-1)/2
	maxDist := math.Hypot(float64(bounds.Dx())/2, float64(bounds.Dy())/2)

	parallel.Line(bounds.Dy(), func(start, end int) {
		for y := bounds.Min.Y + start; y < bounds.Min.Y+end; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
				factor := 1 - intensity/2*math.Pow(d, radius)
				if factor < 0 {
					factor = 0
				}
				off := dst.PixOffset(x, y)
				for c := 0; c < 3; c++ {
					dst.Pix[off+c] = clamp8(float64(dst.Pix[off+c]) * factor)
				}
			}
		}
	})
	return dst, nil
}
