package pipeline

import (
	"go.uber.org/atomic"
)

type Counters struct {
	Received     atomic.Uint64
	Processed    atomic.Uint64
	Failed       atomic.Uint64
	Rendered     atomic.Uint64
	RenderErrors atomic.Uint64
	Photos       atomic.Uint64
}

type Statistics struct {
	Filter       string
	Position     string
	Received     uint64
	Processed    uint64
	Failed       uint64 `json:",omitempty"`
	Rendered     uint64
	RenderErrors uint64 `json:",omitempty"`
	Photos       uint64 `json:",omitempty"`
}

func (c *Counters) ToStats() Statistics {
	return Statistics{
		Received:     c.Received.Load(),
		Processed:    c.Processed.Load(),
		Failed:       c.Failed.Load(),
		Rendered:     c.Rendered.Load(),
		RenderErrors: c.RenderErrors.Load(),
		Photos:       c.Photos.Load(),
	}
}
