// Package render provides preview sinks for processed frames.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xaionaro-go/camerafilter/frame"
)

// Renderer displays a processed frame. The frame is borrowed: it must
// not be retained or modified after Render returns.
type Renderer interface {
	Render(ctx context.Context, f *frame.Buffer) error
}

type RendererFunc func(ctx context.Context, f *frame.Buffer) error

func (fn RendererFunc) Render(ctx context.Context, f *frame.Buffer) error {
	return fn(ctx, f)
}

// Discard drops every frame.
type Discard struct{}

func (Discard) String() string                              { return "Discard" }
func (Discard) Render(context.Context, *frame.Buffer) error { return nil }

// Multi forwards every frame to all of its renderers.
type Multi []Renderer

func (m Multi) String() string {
	parts := make([]string, 0, len(m))
	for _, r := range m {
		parts = append(parts, fmt.Sprint(r))
	}
	return fmt.Sprintf("Multi(%s)", strings.Join(parts, ", "))
}

func (m Multi) Render(ctx context.Context, f *frame.Buffer) error {
	var result []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Render(ctx, f); err != nil {
			result = append(result, fmt.Errorf("%v: %w", r, err))
		}
	}
	return errors.Join(result...)
}
