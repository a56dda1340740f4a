// option.go defines functional options for configuring the backend.

package bildprocessor

import (
	"math/rand"
)

type config struct {
	RandSource rand.Source
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
	cfg := config{}
	s.apply(&cfg)
	return cfg
}

// OptionRandSource sets the random generator used for noise layers.
type OptionRandSource struct {
	rand.Source
}

func (opt OptionRandSource) apply(cfg *config) {
	cfg.RandSource = opt.Source
}

// OptionRandSeed is a shorthand for OptionRandSource{rand.NewSource(seed)}.
type OptionRandSeed int64

func (opt OptionRandSeed) apply(cfg *config) {
	cfg.RandSource = rand.NewSource(int64(opt))
}
