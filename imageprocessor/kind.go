package imageprocessor

import (
	"fmt"
)

type Kind int

const (
	KindUndefined Kind = iota
	KindTransferEffect
	KindTonal
	KindRandomNoiseGenerator
	KindMultiplyBlend
	KindVignette
	KindSepia
	KindNoir
	KindBloom
	endOfKind
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindTransferEffect:
		return "transferEffect"
	case KindTonal:
		return "tonal"
	case KindRandomNoiseGenerator:
		return "randomNoiseGenerator"
	case KindMultiplyBlend:
		return "multiplyBlend"
	case KindVignette:
		return "vignette"
	case KindSepia:
		return "sepia"
	case KindNoir:
		return "noir"
	case KindBloom:
		return "bloom"
	default:
		return fmt.Sprintf("unknown_%d_", int(k))
	}
}

// IsGenerator reports whether the operation produces an image out of
// nothing but an extent.
func (k Kind) IsGenerator() bool {
	return k == KindRandomNoiseGenerator
}

// NeedsBackground reports whether the operation joins two images.
func (k Kind) NeedsBackground() bool {
	return k == KindMultiplyBlend
}

func AllKinds() []Kind {
	result := make([]Kind, 0, int(endOfKind)-1)
	for k := KindUndefined + 1; k < endOfKind; k++ {
		result = append(result, k)
	}
	return result
}
