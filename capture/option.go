package capture

import (
	"time"
)

const (
	defaultReadRetryInterval = 100 * time.Millisecond
)

type config struct {
	ReadRetryInterval time.Duration
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
	cfg := config{
		ReadRetryInterval: defaultReadRetryInterval,
	}
	s.apply(&cfg)
	return cfg
}

// OptionReadRetryInterval is how long the worker waits after a failed
// frame read before reading again (unless the configuration changes).
type OptionReadRetryInterval time.Duration

func (opt OptionReadRetryInterval) apply(cfg *config) {
	cfg.ReadRetryInterval = time.Duration(opt)
}
