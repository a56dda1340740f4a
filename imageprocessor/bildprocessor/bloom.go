package bildprocessor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"go.uber.org/atomic"
)

const (
	defaultBloomRadius    = 10.0
	defaultBloomIntensity = 0.5
)

// Bloom adds a soft glow around bright areas. The glow bleeds outside
// the input, so the output extent is the input extent grown by
// ceil(radius) on every side.
type Bloom struct {
	Radius    atomic.Float64
	Intensity atomic.Float64
}

var _ imageprocessor.Operation = (*Bloom)(nil)

func NewBloom(radius, intensity float64) *Bloom {
	b := &Bloom{}
	b.Radius.Store(radius)
	b.Intensity.Store(intensity)
	return b
}

func (b *Bloom) String() string {
	return fmt.Sprintf("Bloom(radius=%v, intensity=%v)", b.Radius.Load(), b.Intensity.Load())
}

func (*Bloom) Kind() imageprocessor.Kind { return imageprocessor.KindBloom }

func (b *Bloom) validate() error {
	if b.Radius.Load() < 0 {
		return fmt.Errorf("radius must not be negative, got %v", b.Radius.Load())
	}
	return nil
}

func (b *Bloom) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(b.Kind(), inputs); err != nil {
		return nil, err
	}
	radius := b.Radius.Load()
	intensity := b.Intensity.Load()
	if radius == 0 || intensity == 0 {
		return clone.AsRGBA(inputs.Image), nil
	}

	pad := int(math.Ceil(radius))
	origin := inputs.Image.Bounds().Min
	padded := clone.Pad(inputs.Image, pad, pad, clone.EdgeExtend)
	glow := adjust.Apply(blur.Gaussian(padded, radius), func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: clamp8(float64(c.R) * intensity),
			G: clamp8(float64(c.G) * intensity),
			B: clamp8(float64(c.B) * intensity),
			A: c.A,
		}
	})
	out := blend.Add(padded, glow)
	topLeft := origin.Sub(image.Pt(pad, pad))
	out.Rect = image.Rectangle{Min: topLeft, Max: topLeft.Add(out.Rect.Size())}
	return out, nil
}
