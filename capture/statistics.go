package capture

import (
	"go.uber.org/atomic"
)

type Counters struct {
	Captured    atomic.Uint64
	Delivered   atomic.Uint64
	DroppedBusy atomic.Uint64
	Discarded   atomic.Uint64
	ReadErrors  atomic.Uint64
	Configured  atomic.Uint64
}

type Statistics struct {
	State       State
	Position    string
	Captured    uint64
	Delivered   uint64
	DroppedBusy uint64 `json:",omitempty"`
	Discarded   uint64 `json:",omitempty"`
	ReadErrors  uint64 `json:",omitempty"`
	Configured  uint64
}

func (c *Counters) ToStats() Statistics {
	return Statistics{
		Captured:    c.Captured.Load(),
		Delivered:   c.Delivered.Load(),
		DroppedBusy: c.DroppedBusy.Load(),
		Discarded:   c.Discarded.Load(),
		ReadErrors:  c.ReadErrors.Load(),
		Configured:  c.Configured.Load(),
	}
}
