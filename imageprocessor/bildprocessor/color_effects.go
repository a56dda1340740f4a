package bildprocessor

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
)

func requireImage(kind imageprocessor.Kind, inputs imageprocessor.Inputs) error {
	if inputs.Image == nil {
		return imageprocessor.ErrMissingInput{Kind: kind, Input: "image"}
	}
	return nil
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}

// TransferEffect emulates a faded warm film look: lifted blacks,
// slightly boosted reds and muted blues.
type TransferEffect struct{}

var _ imageprocessor.Operation = TransferEffect{}

func (TransferEffect) String() string           { return "TransferEffect" }
func (TransferEffect) Kind() imageprocessor.Kind { return imageprocessor.KindTransferEffect }

func (op TransferEffect) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(op.Kind(), inputs); err != nil {
		return nil, err
	}
	const lift = 0.08
	return adjust.Apply(inputs.Image, func(c color.RGBA) color.RGBA {
		r := float64(c.R) / 255
		g := float64(c.G) / 255
		b := float64(c.B) / 255
		return color.RGBA{
			R: clamp8(255 * (lift + (1-lift)*math.Pow(r, 0.95)*1.02)),
			G: clamp8(255 * (lift + (1-lift)*g*0.97)),
			B: clamp8(255 * (lift*0.8 + (1-lift)*math.Pow(b, 1.1)*0.9)),
			A: c.A,
		}
	}), nil
}

// Tonal is a soft black-and-white rendition.
type Tonal struct{}

var _ imageprocessor.Operation = Tonal{}

func (Tonal) String() string           { return "Tonal" }
func (Tonal) Kind() imageprocessor.Kind { return imageprocessor.KindTonal }

func (op Tonal) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(op.Kind(), inputs); err != nil {
		return nil, err
	}
	return adjust.Contrast(effect.Grayscale(inputs.Image), -0.15), nil
}

// Noir is a high-contrast black-and-white rendition.
type Noir struct{}

var _ imageprocessor.Operation = Noir{}

func (Noir) String() string           { return "Noir" }
func (Noir) Kind() imageprocessor.Kind { return imageprocessor.KindNoir }

func (op Noir) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(op.Kind(), inputs); err != nil {
		return nil, err
	}
	return adjust.Contrast(effect.Grayscale(inputs.Image), 0.35), nil
}

type Sepia struct{}

var _ imageprocessor.Operation = Sepia{}

func (Sepia) String() string           { return "Sepia" }
func (Sepia) Kind() imageprocessor.Kind { return imageprocessor.KindSepia }

func (op Sepia) Process(
	ctx context.Context,
	inputs imageprocessor.Inputs,
) (image.Image, error) {
	if err := requireImage(op.Kind(), inputs); err != nil {
		return nil, err
	}
	return effect.Sepia(inputs.Image), nil
}
