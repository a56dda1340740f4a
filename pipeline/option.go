package pipeline

import (
	"github.com/xaionaro-go/camerafilter/preset"
)

type config struct {
	Catalog       *preset.Catalog
	InitialFilter preset.ID
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
		InitialFilter: preset.IDOriginal,
	}
	s.apply(&cfg)
	if cfg.Catalog == nil {
		cfg.Catalog = preset.Default()
	}
	return cfg
}

type OptionCatalog struct {
	Catalog *preset.Catalog
}

func (opt OptionCatalog) apply(cfg *config) {
	cfg.Catalog = opt.Catalog
}

type OptionInitialFilter preset.ID

func (opt OptionInitialFilter) apply(cfg *config) {
	cfg.InitialFilter = preset.ID(opt)
}
