package bildprocessor

import (
	"context"
	"math/rand"
	"time"

	"github.com/xaionaro-go/xsync"
)

// randomSource hands out blocks of random bytes; the generator itself
// is not safe for concurrent use, hence the lock.
type randomSource struct {
	locker xsync.Mutex
	rand   *rand.Rand
}

func newRandomSource(src rand.Source) *randomSource {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &randomSource{
		rand: rand.New(src),
	}
}

func (r *randomSource) Fill(ctx context.Context, buf []byte) {
	r.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		r.rand.Read(buf)
	})
}
