package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolResetsOnPut(t *testing.T) {
	type item struct{ v int }
	p := NewPool(
		func() *item { return &item{} },
		func(i *item) { i.v = 0 },
	)

	i := p.Get()
	i.v = 42
	p.Put(i)
	require.Zero(t, i.v)
	require.NotNil(t, p.Get())
}

func TestPoolWithoutReuse(t *testing.T) {
	ReuseMemory = false
	defer func() { ReuseMemory = true }()

	type item struct{ v int }
	allocated := 0
	resets := 0
	p := NewPool(
		func() *item { allocated++; return &item{} },
		func(i *item) { resets++ },
	)

	a := p.Get()
	a.v = 42
	p.Put(a)
	require.Equal(t, 42, a.v)
	require.Zero(t, resets)

	b := p.Get()
	require.Equal(t, 2, allocated)
	require.NotSame(t, a, b)
}
