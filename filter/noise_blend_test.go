package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/imageprocessor/bildprocessor"
	"github.com/xaionaro-go/camerafilter/types"
)

func TestNoiseBlendDependsOnSeed(t *testing.T) {
	ctx := context.Background()
	in := frame.New(16, 12, types.PixelFormatRGBA)
	for i := range in.Pix {
		in.Pix[i] = 200
	}
	chain := MustNewChain("grain", NoiseBlend())

	a, err := Apply(ctx, bildprocessor.New(bildprocessor.OptionRandSeed(1)), chain, in)
	require.NoError(t, err)
	b, err := Apply(ctx, bildprocessor.New(bildprocessor.OptionRandSeed(2)), chain, in)
	require.NoError(t, err)

	require.Equal(t, in.Width, a.Width)
	require.Equal(t, in.Height, a.Height)
	require.Equal(t, a.Width, b.Width)
	require.Equal(t, a.Height, b.Height)
	require.False(t, a.Equal(b))
}
