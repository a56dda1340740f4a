// Package fallback provides a backend that picks, per operation kind,
// the first backend able to construct it.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xaionaro-go/camerafilter/imageprocessor"
	"github.com/xaionaro-go/camerafilter/logger"
)

type Backend struct {
	Backends []imageprocessor.Backend
}

var _ imageprocessor.Backend = (*Backend)(nil)

func New(backends ...imageprocessor.Backend) *Backend {
	return &Backend{
		Backends: backends,
	}
}

func (b *Backend) String() string {
	names := make([]string, 0, len(b.Backends))
	for _, backend := range b.Backends {
		names = append(names, backend.String())
	}
	return fmt.Sprintf("Fallback(%s)", strings.Join(names, ", "))
}

func (b *Backend) NewOperation(
	ctx context.Context,
	kind imageprocessor.Kind,
	params imageprocessor.Params,
) (imageprocessor.Operation, error) {
	var errs []error
	for _, backend := range b.Backends {
		op, err := backend.NewOperation(ctx, kind, params)
		if err == nil {
			return op, nil
		}
		if !errors.As(err, &imageprocessor.ErrFilterUnavailable{}) {
			return nil, fmt.Errorf("unable to construct %s in backend %s: %w", kind, backend, err)
		}
		logger.Tracef(ctx, "backend %s cannot provide %s: %v", backend, kind, err)
		errs = append(errs, err)
	}
	return nil, imageprocessor.ErrFilterUnavailable{
		Kind:    kind,
		Backend: b.String(),
		Err:     errors.Join(errs...),
	}
}
