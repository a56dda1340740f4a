// bildprocessor.go implements the CPU backend on top of github.com/anthonynsimon/bild.

// Package bildprocessor is the default image-processing backend; every
// operation kind runs on the CPU using bild.
package bildprocessor

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/logger"
)

const backendName = "bild"

type Backend struct {
	random *randomSource
}

var _ imageprocessor.Backend = (*Backend)(nil)

func New(opts ...Option) *Backend {
	cfg := Options(opts).config()
	return &Backend{
		random: newRandomSource(cfg.RandSource),
	}
}

func (b *Backend) String() string {
	return backendName
}

func (b *Backend) NewOperation(
	ctx context.Context,
	kind imageprocessor.Kind,
	params imageprocessor.Params,
) (_ret imageprocessor.Operation, _err error) {
	logger.Tracef(ctx, "NewOperation(ctx, %s, {%s})", kind, params)
	defer func() { logger.Tracef(ctx, "/NewOperation(ctx, %s, {%s}): %v %v", kind, params, _ret, _err) }()

	switch kind {
	case imageprocessor.KindTransferEffect:
		return TransferEffect{}, nil
	case imageprocessor.KindTonal:
		return Tonal{}, nil
	case imageprocessor.KindNoir:
		return Noir{}, nil
	case imageprocessor.KindSepia:
		return Sepia{}, nil
	case imageprocessor.KindRandomNoiseGenerator:
		return &NoiseGenerator{random: b.random}, nil
	case imageprocessor.KindMultiplyBlend:
		return MultiplyBlend{}, nil
	case imageprocessor.KindVignette:
		v := NewVignette(
			params.Get(imageprocessor.ParamIntensity, defaultVignetteIntensity),
			params.Get(imageprocessor.ParamRadius, defaultVignetteRadius),
		)
		if err := v.validate(); err != nil {
			return nil, imageprocessor.ErrFilterUnavailable{Kind: kind, Backend: backendName, Err: err}
		}
		return v, nil
	case imageprocessor.KindBloom:
		bl := NewBloom(
			params.Get(imageprocessor.ParamRadius, defaultBloomRadius),
			params.Get(imageprocessor.ParamIntensity, defaultBloomIntensity),
		)
		if err := bl.validate(); err != nil {
			return nil, imageprocessor.ErrFilterUnavailable{Kind: kind, Backend: backendName, Err: err}
		}
		return bl, nil
	default:
		return nil, imageprocessor.ErrFilterUnavailable{
			Kind:    kind,
			Backend: backendName,
			Err:     fmt.Errorf("unknown operation kind"),
		}
	}
}
