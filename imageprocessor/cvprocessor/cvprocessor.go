//go:build with_cv
// +build with_cv

// cvprocessor.go implements an OpenCV backend for the operations OpenCV has native kernels for.

package cvprocessor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"go.uber.org/atomic"
	"gocv.io/x/gocv"
)

const backendName = "cv"

type Backend struct{}

var _ imageprocessor.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func (*Backend) String() string {
	return backendName
}

func (*Backend) NewOperation(
	ctx context.Context,
	kind imageprocessor.Kind,
	params imageprocessor.Params,
) (imageprocessor.Operation, error) {
	switch kind {
	case imageprocessor.KindNoir:
		return Noir{}, nil
	case imageprocessor.KindBloom:
		b := &Bloom{}
		b.Radius.Store(params.Get(imageprocessor.ParamRadius, 10))
		b.Intensity.Store(params.Get(imageprocessor.ParamIntensity, 0.5))
		if b.Radius.Load() < 0 {
			return nil, imageprocessor.ErrFilterUnavailable{Kind: kind, Backend: backendName, Err: fmt.Errorf("negative radius")}
		}
		return b, nil
	default:
		return nil, imageprocessor.ErrFilterUnavailable{Kind: kind, Backend: backendName}
	}
}

func toMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.Mat{}, fmt.Errorf("no input image")
	}
	return gocv.ImageToMatRGBA(img)
}

// Noir is grayscale with an equalized histogram.
type Noir struct{}

func (Noir) String() string           { return "cv.Noir" }
func (Noir) Kind() imageprocessor.Kind { return imageprocessor.KindNoir }

func (Noir) Process(ctx context.Context, inputs imageprocessor.Inputs) (image.Image, error) {
	src, err := toMat(inputs.Image)
	if err != nil {
		return nil, fmt.Errorf("unable to convert the image to a Mat: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray); err != nil {
		return nil, fmt.Errorf("unable to convert to grayscale: %w", err)
	}

	equalized := gocv.NewMat()
	defer equalized.Close()
	if err := gocv.EqualizeHist(gray, &equalized); err != nil {
		return nil, fmt.Errorf("unable to equalize the histogram: %w", err)
	}

	dst := gocv.NewMat()
	defer dst.Close()
	if err := gocv.CvtColor(equalized, &dst, gocv.ColorGrayToRGBA); err != nil {
		return nil, fmt.Errorf("unable to convert back to RGBA: %w", err)
	}
	return matToImage(imageprocessor.KindNoir, dst)
}

// matToImage converts the final Mat of an operation, an empty Mat is
// reported as ErrEmptyOutput of the given kind.
func matToImage(kind imageprocessor.Kind, m gocv.Mat) (image.Image, error) {
	if m.Empty() {
		return nil, imageprocessor.ErrEmptyOutput{Kind: kind}
	}
	out, err := m.ToImage()
	if err != nil {
		return nil, fmt.Errorf("unable to convert the Mat to an image: %w", err)
	}
	return out, nil
}

// Bloom grows the extent by ceil(radius) on each side, like the bild one.
type Bloom struct {
	Radius    atomic.Float64
	Intensity atomic.Float64
}

func (b *Bloom) String() string {
	return fmt.Sprintf("cv.Bloom(radius=%v, intensity=%v)", b.Radius.Load(), b.Intensity.Load())
}

func (*Bloom) Kind() imageprocessor.Kind { return imageprocessor.KindBloom }

func (b *Bloom) Process(ctx context.Context, inputs imageprocessor.Inputs) (image.Image, error) {
	src, err := toMat(inputs.Image)
	if err != nil {
		return nil, fmt.Errorf("unable to convert the image to a Mat: %w", err)
	}
	defer src.Close()

	radius := b.Radius.Load()
	pad := int(math.Ceil(radius))
	padded := gocv.NewMat()
	defer padded.Close()
	if err := gocv.CopyMakeBorder(src, &padded, pad, pad, pad, pad, gocv.BorderReplicate, color.RGBA{}); err != nil {
		return nil, fmt.Errorf("unable to pad the image by %d: %w", pad, err)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	ksize := 2*pad + 1
	if err := gocv.GaussianBlur(padded, &blurred, image.Pt(ksize, ksize), radius/2, radius/2, gocv.BorderDefault); err != nil {
		return nil, fmt.Errorf("unable to blur with radius %v: %w", radius, err)
	}

	dst := gocv.NewMat()
	defer dst.Close()
	if err := gocv.AddWeighted(padded, 1, blurred, b.Intensity.Load(), 0, &dst); err != nil {
		return nil, fmt.Errorf("unable to add the glow: %w", err)
	}

	out, err := matToImage(imageprocessor.KindBloom, dst)
	if err != nil {
		return nil, err
	}
	rgba, ok := out.(*image.RGBA)
	if !ok {
		return out, nil
	}
	topLeft := inputs.Image.Bounds().Min.Sub(image.Pt(pad, pad))
	rgba.Rect = image.Rectangle{Min: topLeft, Max: topLeft.Add(rgba.Rect.Size())}
	return rgba, nil
}
