package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPool(t *testing.T) {
	p := NewBufferPool()

	buf := p.Get(16)
	require.Len(t, buf, 16)
	require.Equal(t, uint64(1), p.Allocated.Load())

	other := p.Get(32)
	require.Len(t, other, 32)

	p.Put(buf[:4])
	p.Put(other)
	p.Put(nil)

	for range 10 {
		require.Len(t, p.Get(16), 16)
		require.Len(t, p.Get(32), 32)
	}
	require.Nil(t, p.Get(0))
}

func TestBufferPoolFirstGetPerSize(t *testing.T) {
	for _, size := range []int{1, 16, 4096} {
		p := NewBufferPool()
		var buf []byte
		require.NotPanics(t, func() { buf = p.Get(size) })
		require.Len(t, buf, size)
		require.Equal(t, uint64(1), p.Allocated.Load())
	}

	p := NewBufferPool()
	require.NotPanics(t, func() { p.Put(make([]byte, 8)) })
	require.Len(t, p.Get(8), 8)
}

func TestPoolReset(t *testing.T) {
	type item struct{ V int }
	p := NewPool(
		func() *item { return &item{} },
		func(i *item) { i.V = 0 },
		nil,
	)
	i := p.Get()
	i.V = 5
	p.Put(i, nil)
	require.Zero(t, i.V)
}
