package stage

import (
	"github.com/xaionaro-go/avtransform/attribute"
)

type config struct {
	Name              string
	InitialAttributes attribute.Set
	LatencyWindow     int
}

func defaultConfig() config {
	return config{
		LatencyWindow: 30,
	}
}

type Option interface {
	apply(*config)
}

type Options []Option

func (s Options) apply(cfg *config) {
	for _, opt := range s {
		opt.apply(cfg)
	}
}

func (s Options) config() config {
	cfg := defaultConfig()
	s.apply(&cfg)
	return cfg
}

// OptionName overrides the name used in String() and logs; by default the
// strategy name is used.
type OptionName string

func (opt OptionName) apply(cfg *config) {
	cfg.Name = string(opt)
}

// OptionInitialAttributes pre-populates the attribute store.
type OptionInitialAttributes attribute.Set

func (opt OptionInitialAttributes) apply(cfg *config) {
	cfg.InitialAttributes = attribute.Set(opt).Clone()
}

// OptionLatencyWindow is the amount of samples the transform latency
// indicator averages over.
type OptionLatencyWindow int

func (opt OptionLatencyWindow) apply(cfg *config) {
	cfg.LatencyWindow = int(opt)
}
