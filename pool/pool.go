// pool.go implements a typed wrapper around sync.Pool.

// Package pool provides a generic object pool.
package pool

import (
	"sync"
)

// ReuseMemory may be switched off to make every Get allocate, which
// helps to track down use-after-release bugs.
var ReuseMemory = true

type Pool[T any] struct {
	sync.Pool
	ResetFunc func(*T)
}

func NewPool[T any](
	allocFunc func() *T,
	resetFunc func(*T),
) *Pool[T] {
	return &Pool[T]{
		Pool: sync.Pool{
			New: func() any {
				return allocFunc()
			},
		},
		ResetFunc: resetFunc,
	}
}

func (p *Pool[T]) Get() *T {
	if !ReuseMemory {
		return p.Pool.New().(*T)
	}
	return p.Pool.Get().(*T)
}

func (p *Pool[T]) Put(items ...*T) {
	if !ReuseMemory {
		return
	}
	for _, item := range items {
		if p.ResetFunc != nil {
			p.ResetFunc(item)
		}
		p.Pool.Put(item)
	}
}
