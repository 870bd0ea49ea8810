package stage

import (
	"time"

	"github.com/xaionaro-go/avtransform/indicator"
	"github.com/xaionaro-go/avtransform/types"
)

// Counters are updated while the Stage lock is held, but may be read at any
// time without it.
type Counters struct {
	Submitted types.CountersItem
	Rejected  types.CountersItem
	Produced  types.CountersItem
	Dropped   types.CountersItem
	Failed    types.CountersItem
	Flushed   types.CountersItem

	TransformTime indicator.MovingAverage[time.Duration]
}

func newCounters(latencyWindow int) *Counters {
	return &Counters{
		TransformTime: indicator.NewMAMADefault[time.Duration](latencyWindow),
	}
}

type Statistics struct {
	Submitted types.StatisticsItem
	Rejected  types.StatisticsItem
	Produced  types.StatisticsItem
	Dropped   types.StatisticsItem
	Failed    types.StatisticsItem
	Flushed   types.StatisticsItem

	AverageTransformTime time.Duration `json:",omitempty"`
}

func (c *Counters) ToStats() Statistics {
	return Statistics{
		Submitted:            c.Submitted.ToStats(),
		Rejected:             c.Rejected.ToStats(),
		Produced:             c.Produced.ToStats(),
		Dropped:              c.Dropped.ToStats(),
		Failed:               c.Failed.ToStats(),
		Flushed:              c.Flushed.ToStats(),
		AverageTransformTime: c.TransformTime.Value(),
	}
}
