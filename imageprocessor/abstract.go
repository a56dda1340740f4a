// abstract.go defines the capability interfaces implemented by image-processing backends.

// Package imageprocessor describes the image operations a filter chain is
// built from, independently of which backend executes them.
package imageprocessor

import (
	"context"
	"fmt"
	"image"
)

// Inputs are the images an Operation consumes.
type Inputs struct {
	// Image is the primary input; generators ignore it.
	Image image.Image

	// Background is the secondary input of two-input operations
	// (e.g. the layer a multiply blend is applied onto).
	Background image.Image

	// Extent is the area generators must cover.
	Extent image.Rectangle
}

// Operation is one constructed image operation with its parameters bound.
type Operation interface {
	fmt.Stringer
	Kind() Kind

	// Process returns the resulting image; a nil image with a nil error
	// means the operation yielded no output.
	Process(ctx context.Context, inputs Inputs) (image.Image, error)
}

// Backend constructs Operations. A backend that cannot provide an
// operation of the requested kind returns ErrFilterUnavailable.
type Backend interface {
	fmt.Stringer
	NewOperation(ctx context.Context, kind Kind, params Params) (Operation, error)
}
