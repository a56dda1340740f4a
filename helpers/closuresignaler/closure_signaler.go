// Package closuresignaler provides a channel that gets closed exactly
// once, marking the end of an object's lifetime.
package closuresignaler

import (
	"context"
	"sync"

	"github.com/xaionaro-go/camerafilter/logger"
)

type ClosureSignaler struct {
	once   sync.Once
	closed chan struct{}
}

func New() *ClosureSignaler {
	return &ClosureSignaler{
		closed: make(chan struct{}),
	}
}

func (c *ClosureSignaler) CloseChan() <-chan struct{} {
	return c.closed
}

// Close is safe to call multiple times.
func (c *ClosureSignaler) Close(ctx context.Context) {
	c.once.Do(func() {
		logger.Tracef(ctx, "closing")
		close(c.closed)
	})
}

func (c *ClosureSignaler) IsClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
