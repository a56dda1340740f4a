package photo

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/camerafilter/frame"
)

type ErrNotAuthorized struct{}

func (ErrNotAuthorized) Error() string {
	return "not authorized to save photos"
}

// Authorizer tells whether saving photos is permitted.
type Authorizer interface {
	IsAuthorized(ctx context.Context) bool
}

type AuthorizerFunc func(ctx context.Context) bool

func (fn AuthorizerFunc) IsAuthorized(ctx context.Context) bool {
	return fn(ctx)
}

// AuthorizedSaver saves only if its Authorizer permits it.
type AuthorizedSaver struct {
	Authorizer Authorizer
	Saver      Saver
}

var _ Saver = (*AuthorizedSaver)(nil)

func (s *AuthorizedSaver) String() string {
	return fmt.Sprintf("Authorized(%v)", s.Saver)
}

func (s *AuthorizedSaver) Save(ctx context.Context, f *frame.Buffer) (string, error) {
	if s.Authorizer == nil || !s.Authorizer.IsAuthorized(ctx) {
		return "", ErrNotAuthorized{}
	}
	return s.Saver.Save(ctx, f)
}
