package types

import (
	"context"
)

// Closer is implemented by anything holding a camera, a file or a
// listener that must be released explicitly.
type Closer interface {
	Close(context.Context) error
}
