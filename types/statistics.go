package types

import (
	"sync/atomic"
)

type StatisticsItem struct {
	Count uint64 `json:",omitempty"`
	Bytes uint64 `json:",omitempty"`
}

type CountersItem struct {
	Count atomic.Uint64
	Bytes atomic.Uint64
}

func (c *CountersItem) Increment(msgSize uint64) {
	c.Count.Add(1)
	c.Bytes.Add(msgSize)
}

func (c *CountersItem) ToStats() StatisticsItem {
	return StatisticsItem{
		Count: c.Count.Load(),
		Bytes: c.Bytes.Load(),
	}
}
