// pool.go implements a pool for reusing frame pixel storage.

package frame

import (
	"github.com/xaionaro-go/camerafilter/pool"
	"github.com/xaionaro-go/camerafilter/types"
)

// BufferPool recycles pixel storage of frames produced per camera tick.
type BufferPool struct {
	pool *pool.Pool[Buffer]
}

// Pool is the default pool used by capture devices.
var Pool = NewBufferPool()

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: pool.NewPool(
			func() *Buffer { return &Buffer{} },
			func(b *Buffer) {
				b.Metadata = Metadata{}
				b.Pix = b.Pix[:0]
				b.Width, b.Height = 0, 0
				b.PixelFormat = types.PixelFormatUndefined
			},
		),
	}
}

// Get returns a buffer of the requested geometry. Pixel contents are
// unspecified: the caller is expected to overwrite all of them.
func (p *BufferPool) Get(width, height int, pixFmt types.PixelFormat) *Buffer {
	b := p.pool.Get()
	size := width * height * pixFmt.BytesPerPixel()
	if cap(b.Pix) < size {
		b.Pix = make([]byte, size)
	}
	b.Pix = b.Pix[:size]
	b.Width = width
	b.Height = height
	b.PixelFormat = pixFmt
	b.pool = p
	return b
}

func (p *BufferPool) put(b *Buffer) {
	b.pool = nil
	p.pool.Put(b)
}
