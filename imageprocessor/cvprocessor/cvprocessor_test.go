//go:build with_cv
// +build with_cv

package cvprocessor

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"gocv.io/x/gocv"
)

func TestMatToImageEmpty(t *testing.T) {
	m := gocv.NewMat()
	defer m.Close()

	_, err := matToImage(imageprocessor.KindBloom, m)
	require.ErrorAs(t, err, &imageprocessor.ErrEmptyOutput{})
	require.Equal(t, imageprocessor.KindBloom, err.(imageprocessor.ErrEmptyOutput).Kind)
}

func TestNoirAndBloom(t *testing.T) {
	ctx := context.Background()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 90, A: 255})
		}
	}

	out, err := Noir{}.Process(ctx, imageprocessor.Inputs{Image: img})
	require.NoError(t, err)
	require.Equal(t, img.Bounds().Size(), out.Bounds().Size())

	b := &Bloom{}
	b.Radius.Store(2)
	b.Intensity.Store(0.5)
	out, err = b.Process(ctx, imageprocessor.Inputs{Image: img})
	require.NoError(t, err)
	require.Equal(t, image.Rect(-2, -2, 10, 8), out.Bounds())

	_, err = Noir{}.Process(ctx, imageprocessor.Inputs{})
	require.Error(t, err)
}
