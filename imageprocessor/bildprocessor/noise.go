package bildprocessor

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/noise"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"go.uber.org/atomic"
)

// NoiseGenerator produces a colored uniform-noise layer covering the
// requested extent.
type NoiseGenerator struct {
	random *randomSource
}

var _ imageprocessor.Operation = (*NoiseGenerator)(nil)

func (*NoiseGenerator) String() string           { return "NoiseGenerator" }
func (*NoiseGenerator) Kind() imageprocessor.Kind { return imageprocessor.KindRandomNoiseGenerator }

func (op *NoiseGenerator) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	extent := inputs.Extent
	if extent.Empty() {
		return nil, fmt.Errorf("cannot generate noise for an empty extent %v", extent)
	}

	// bild calls NoiseFn from multiple goroutines, so values are served
	// from a block pre-filled by the (single-threaded) generator.
	samples := make([]byte, extent.Dx()*extent.Dy()*3)
	op.random.Fill(ctx, samples)
	var idx atomic.Uint64
	img := noise.Generate(extent.Dx(), extent.Dy(), &noise.Options{
		NoiseFn: func() uint8 {
			i := idx.Inc() - 1
			return samples[i%uint64(len(samples))]
		},
		Monochrome: false,
	})
	img.Rect = image.Rectangle{Min: extent.Min, Max: extent.Min.Add(img.Rect.Size())}
	return img, nil
}

// MultiplyBlend multiplies the image over its background.
type MultiplyBlend struct{}

var _ imageprocessor.Operation = MultiplyBlend{}

func (MultiplyBlend) String() string           { return "MultiplyBlend" }
func (MultiplyBlend) Kind() imageprocessor.Kind { return imageprocessor.KindMultiplyBlend }

func (op MultiplyBlend) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(op.Kind(), inputs); err != nil {
		return nil, err
	}
	if inputs.Background == nil {
		return nil, imageprocessor.ErrMissingInput{Kind: op.Kind(), Input: "background"}
	}
	return blend.Multiply(inputs.Background, inputs.Image), nil
}
