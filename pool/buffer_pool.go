package pool

import (
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

type buffer struct {
	Data []byte
}

// BufferPool recycles byte buffers of a few distinct sizes (typically one:
// the frame size of the negotiated type).
type BufferPool struct {
	pools xsync.Map[int, *Pool[buffer]]

	// Allocated is the amount of buffers allocated (not reused) so far.
	Allocated atomic.Uint64
}

func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

func (p *BufferPool) poolFor(size int) *Pool[buffer] {
	if pool, ok := p.pools.Load(size); ok {
		return pool
	}
	newPool := NewPool(
		func() *buffer {
			p.Allocated.Inc()
			return &buffer{Data: make([]byte, size)}
		},
		nil,
		nil,
	)
	if actual, loaded := p.pools.LoadOrStore(size, newPool); loaded {
		return actual
	}
	return newPool
}

// Get returns a buffer of exactly the given size; its content is undefined.
// A nil BufferPool just allocates.
func (p *BufferPool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	if p == nil {
		return make([]byte, size)
	}
	if !ReuseMemory {
		p.Allocated.Inc()
		return make([]byte, size)
	}
	return p.poolFor(size).Get().Data
}

// Put gives the buffer back; the caller must not use it afterwards.
func (p *BufferPool) Put(buf []byte) {
	if p == nil || cap(buf) == 0 || !ReuseMemory {
		return
	}
	buf = buf[:cap(buf)]
	p.poolFor(len(buf)).Put(&buffer{Data: buf})
}
