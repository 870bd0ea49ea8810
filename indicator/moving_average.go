// Package indicator provides smoothing indicators for noisy measurements,
// such as per-sample transform latency.
package indicator

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

type MovingAverage[T Number] interface {
	Update(v T) T
	Value() T
	Valid() bool
	Reset()
}
