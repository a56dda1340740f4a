package filter

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/logger"
)

// Apply runs the chain over the frame and returns a new frame with the
// same metadata. The input frame is not modified.
//
// The first failing stage aborts the whole chain: stages whose operation
// cannot be constructed yield imageprocessor.ErrFilterUnavailable, stages
// without output yield imageprocessor.ErrEmptyOutput (both wrapped into ErrStage).
func Apply(
	ctx context.Context,
	backend imageprocessor.Backend,
	chain *Chain,
	in *frame.Buffer,
) (_ret *frame.Buffer, _err error) {
	logger.Tracef(ctx, "Apply(ctx, %s, %s, %s)", backend, chain, in)
	defer func() { logger.Tracef(ctx, "/Apply(ctx, %s, %s, %s): %s %v", backend, chain, in, _ret, _err) }()

	if chain.IsIdentity() {
		return in.Clone(), nil
	}

	src, err := in.RGBA()
	if err != nil {
		return nil, fmt.Errorf("unable to get an RGBA image of the frame: %w", err)
	}
	extent := src.Bounds()

	var cur image.Image = src
	for idx, stage := range chain.stages {
		out, err := applyStage(ctx, backend, stage, cur, extent)
		if err != nil {
			return nil, ErrStage{Index: idx, Stage: stage, Err: err}
		}
		cur = out
	}

	if chain.cropToOriginalExtent {
		cur = imaging.Crop(cur, extent)
	}
	if cur.Bounds().Size() != extent.Size() {
		return nil, ErrExtentChanged{Expected: extent, Actual: cur.Bounds()}
	}

	return frame.FromImage(cur, in.Metadata), nil
}

func applyStage(
	ctx context.Context,
	backend imageprocessor.Backend,
	stage Stage,
	input image.Image,
	extent image.Rectangle,
) (image.Image, error) {
	op, err := backend.NewOperation(ctx, stage.kind, stage.params)
	if err != nil {
		return nil, err
	}

	inputs := imageprocessor.Inputs{
		Image:  input,
		Extent: extent,
	}
	if stage.layer != nil {
		layer, err := generateLayer(ctx, backend, *stage.layer, extent)
		if err != nil {
			return nil, fmt.Errorf("unable to generate layer %s: %w", stage.layer, err)
		}
		inputs.Background = layer
	}

	out, err := op.Process(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Bounds().Empty() {
		return nil, imageprocessor.ErrEmptyOutput{Kind: stage.kind}
	}
	return out, nil
}

// generateLayer produces the secondary input of a two-input stage,
// cropped to the frame extent.
func generateLayer(
	ctx context.Context,
	backend imageprocessor.Backend,
	stage Stage,
	extent image.Rectangle,
) (image.Image, error) {
	op, err := backend.NewOperation(ctx, stage.kind, stage.params)
	if err != nil {
		return nil, err
	}
	layer, err := op.Process(ctx, imageprocessor.Inputs{Extent: extent})
	if err != nil {
		return nil, err
	}
	if layer == nil || layer.Bounds().Empty() {
		return nil, imageprocessor.ErrEmptyOutput{Kind: stage.kind}
	}
	if !extent.In(layer.Bounds()) {
		return nil, fmt.Errorf("generated layer %v does not cover the frame %v", layer.Bounds(), extent)
	}
	if layer.Bounds() != extent {
		layer = imaging.Crop(layer, extent)
	}
	return layer, nil
}
