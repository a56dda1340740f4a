package fallback

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
)

type dummyOperation struct {
	kind    imageprocessor.Kind
	backend string
}

func (op dummyOperation) String() string            { return op.backend }
func (op dummyOperation) Kind() imageprocessor.Kind { return op.kind }
func (op dummyOperation) Process(context.Context, imageprocessor.Inputs) (image.Image, error) {
	return nil, nil
}

type dummyBackend struct {
	name      string
	supported map[imageprocessor.Kind]bool
	err       error
}

func (b dummyBackend) String() string { return b.name }

func (b dummyBackend) NewOperation(
	ctx context.Context,
	kind imageprocessor.Kind,
	params imageprocessor.Params,
) (imageprocessor.Operation, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.supported[kind] {
		return nil, imageprocessor.ErrFilterUnavailable{Kind: kind, Backend: b.name}
	}
	return dummyOperation{kind: kind, backend: b.name}, nil
}

func TestFallback(t *testing.T) {
	ctx := context.Background()
	b := New(
		dummyBackend{name: "gpu", supported: map[imageprocessor.Kind]bool{imageprocessor.KindBloom: true}},
		dummyBackend{name: "cpu", supported: map[imageprocessor.Kind]bool{
			imageprocessor.KindBloom: true,
			imageprocessor.KindSepia: true,
		}},
	)
	require.Equal(t, "Fallback(gpu, cpu)", b.String())

	op, err := b.NewOperation(ctx, imageprocessor.KindBloom, nil)
	require.NoError(t, err)
	require.Equal(t, "gpu", op.String())

	op, err = b.NewOperation(ctx, imageprocessor.KindSepia, nil)
	require.NoError(t, err)
	require.Equal(t, "cpu", op.String())

	_, err = b.NewOperation(ctx, imageprocessor.KindNoir, nil)
	var target imageprocessor.ErrFilterUnavailable
	require.ErrorAs(t, err, &target)
	require.Equal(t, imageprocessor.KindNoir, target.Kind)
}

func TestFallbackStopsOnOtherErrors(t *testing.T) {
	broken := errors.New("broken")
	b := New(
		dummyBackend{name: "a", err: broken},
		dummyBackend{name: "b", supported: map[imageprocessor.Kind]bool{imageprocessor.KindSepia: true}},
	)
	_, err := b.NewOperation(context.Background(), imageprocessor.KindSepia, nil)
	require.ErrorIs(t, err, broken)
}
