package preset

import (
	"context"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/camerafilter/filter"
	"github.com/xaionaro-go/camerafilter/frame"
	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/imageprocessor/bildprocessor"
	"github.com/xaionaro-go/camerafilter/types"
)

func gradientFrame(w, h int) *frame.Buffer {
	f := frame.New(w, h, types.PixelFormatRGBA)
	img := f.Bounds()
	view, err := f.RGBA()
	if err != nil {
		panic(err)
	}
	for y := img.Min.Y; y < img.Max.Y; y++ {
		for x := img.Min.X; x < img.Max.X; x++ {
			view.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / w),
				G: uint8(255 * y / h),
				B: 100,
				A: 255,
			})
		}
	}
	return f
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, []ID{IDOriginal, IDVintage, IDNoir, IDBloom}, c.IDs())

	e, err := c.Get(IDOriginal)
	require.NoError(t, err)
	require.True(t, e.Chain.IsIdentity())

	e, err = c.Get(IDVintage)
	require.NoError(t, err)
	kinds := make([]imageprocessor.Kind, 0, e.Chain.Len())
	for _, s := range e.Chain.Stages() {
		kinds = append(kinds, s.Kind())
	}
	require.Equal(t, []imageprocessor.Kind{
		imageprocessor.KindTransferEffect,
		imageprocessor.KindMultiplyBlend,
		imageprocessor.KindSepia,
		imageprocessor.KindVignette,
	}, kinds)
	layer, ok := e.Chain.Stages()[1].Layer()
	require.True(t, ok)
	require.Equal(t, imageprocessor.KindRandomNoiseGenerator, layer.Kind())

	e, err = c.Get(IDBloom)
	require.NoError(t, err)
	require.True(t, e.Chain.CropsToOriginalExtent())

	_, err = c.Get(endOfID)
	require.ErrorAs(t, err, &ErrUnknownID{})
}

func TestPresetsKeepDimensions(t *testing.T) {
	ctx := context.Background()
	c := Default()
	backend := bildprocessor.New(bildprocessor.OptionRandSeed(1))
	in := gradientFrame(4, 3)
	in.Sequence = 42

	for _, id := range c.IDs() {
		e, err := c.Get(id)
		require.NoError(t, err)
		out, err := filter.Apply(ctx, backend, e.Chain, in)
		require.NoError(t, err, id.String())
		require.Equal(t, in.Width, out.Width, id.String())
		require.Equal(t, in.Height, out.Height, id.String())
		require.Equal(t, in.Metadata, out.Metadata, id.String())
	}

	e, err := c.Get(IDOriginal)
	require.NoError(t, err)
	out, err := filter.Apply(ctx, backend, e.Chain, in)
	require.NoError(t, err)
	require.True(t, in.Equal(out))
}

func TestParseID(t *testing.T) {
	for _, id := range Default().IDs() {
		parsed, err := ParseID(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	}

	id, err := ParseID(" Noir ")
	require.NoError(t, err)
	require.Equal(t, IDNoir, id)

	_, err = ParseID("sketch")
	require.ErrorAs(t, err, &ErrUnknownID{})

	var v ID
	require.NoError(t, v.Set("bloom"))
	require.Equal(t, IDBloom, v)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(
		Entry{ID: IDOriginal, Chain: filter.Identity("a")},
		Entry{ID: IDOriginal, Chain: filter.Identity("b")},
	)
	require.Error(t, err)
}
