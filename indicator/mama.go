// mama.go implements a MESA Adaptive Moving Average over a ring of the last N measurements.

package indicator

import (
	"sync"

	indicators "github.com/lmpizarro/go_ehlers_indicators"
)

type MAMA[T Number] struct {
	FastLimit float64
	SlowLimit float64

	locker            sync.Mutex
	ring              []float64
	ordered           []float64
	nextIdx           int
	measurementsCount int
	last              T
}

var _ MovingAverage[int64] = (*MAMA[int64])(nil)

func NewMAMADefault[T Number](n int) *MAMA[T] {
	return NewMAMA[T](n, 0.5, 0.05)
}

func NewMAMA[T Number](
	n int,
	fastLimit float64,
	slowLimit float64,
) *MAMA[T] {
	if n < 1 {
		n = 1
	}
	return &MAMA[T]{
		FastLimit: fastLimit,
		SlowLimit: slowLimit,
		ring:      make([]float64, n),
		ordered:   make([]float64, n),
	}
}

// Update adds a measurement and returns the smoothed value. Until the ring is
// full the raw measurement is returned as is.
func (m *MAMA[T]) Update(v T) T {
	m.locker.Lock()
	defer m.locker.Unlock()

	m.ring[m.nextIdx] = float64(v)
	m.nextIdx = (m.nextIdx + 1) % len(m.ring)
	m.measurementsCount++
	if m.measurementsCount < len(m.ring) {
		m.last = v
		return v
	}

	// oldest first:
	copy(m.ordered, m.ring[m.nextIdx:])
	copy(m.ordered[len(m.ring)-m.nextIdx:], m.ring[:m.nextIdx])

	result := indicators.MAMA(m.ordered, m.FastLimit, m.SlowLimit)
	m.last = T(result[len(result)-1])
	return m.last
}

// Value returns the last value returned by Update.
func (m *MAMA[T]) Value() T {
	m.locker.Lock()
	defer m.locker.Unlock()
	return m.last
}

func (m *MAMA[T]) Valid() bool {
	m.locker.Lock()
	defer m.locker.Unlock()
	return m.measurementsCount >= len(m.ring)
}

func (m *MAMA[T]) Reset() {
	m.locker.Lock()
	defer m.locker.Unlock()
	for idx := range m.ring {
		m.ring[idx] = 0
	}
	m.nextIdx = 0
	m.measurementsCount = 0
	var zero T
	m.last = zero
}
