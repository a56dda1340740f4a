package filter

import (
	"github.com/xaionaro-go/camerafilter/imageprocessor"
)

func TransferEffect() Stage {
	return NewStage(imageprocessor.KindTransferEffect, nil)
}

func Tonal() Stage {
	return NewStage(imageprocessor.KindTonal, nil)
}

func Sepia() Stage {
	return NewStage(imageprocessor.KindSepia, nil)
}

func Noir() Stage {
	return NewStage(imageprocessor.KindNoir, nil)
}

func Vignette(intensity, radius float64) Stage {
	return NewStage(imageprocessor.KindVignette, imageprocessor.Params{
		imageprocessor.ParamIntensity: intensity,
		imageprocessor.ParamRadius:    radius,
	})
}

func Bloom(radius, intensity float64) Stage {
	return NewStage(imageprocessor.KindBloom, imageprocessor.Params{
		imageprocessor.ParamRadius:    radius,
		imageprocessor.ParamIntensity: intensity,
	})
}

// NoiseBlend multiplies the image with a random noise layer generated
// at the frame extent ("vintage grain").
func NoiseBlend() Stage {
	return NewStage(imageprocessor.KindMultiplyBlend, nil).
		WithLayer(NewStage(imageprocessor.KindRandomNoiseGenerator, nil))
}
