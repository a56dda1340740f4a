package filter

import (
	"fmt"
	"strings"
)

// Chain is an ordered composition of stages: the first stage consumes
// the frame, every next stage consumes the previous stage's output.
type Chain struct {
	name                 string
	stages               []Stage
	cropToOriginalExtent bool
}

// NewChain requires at least one stage; use Identity for a no-op chain.
func NewChain(name string, stages ...Stage) (*Chain, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyChain{Name: name}
	}
	for idx, stage := range stages {
		if layer, ok := stage.Layer(); ok && !layer.Kind().IsGenerator() {
			return nil, fmt.Errorf("stage #%d (%s): layer %s is not a generator", idx, stage, layer)
		}
		if _, ok := stage.Layer(); !ok && stage.Kind().IsGenerator() {
			return nil, fmt.Errorf("stage #%d: generator %s cannot be a chain stage, bind it as a layer", idx, stage)
		}
	}
	return &Chain{
		name:   name,
		stages: append([]Stage(nil), stages...),
	}, nil
}

func MustNewChain(name string, stages ...Stage) *Chain {
	c, err := NewChain(name, stages...)
	if err != nil {
		panic(err)
	}
	return c
}

// Identity returns the chain that leaves frames unchanged.
func Identity(name string) *Chain {
	return &Chain{name: name}
}

// WithCropToOriginalExtent returns a copy of the chain that crops its
// result back to the input frame's extent.
func (c *Chain) WithCropToOriginalExtent() *Chain {
	cpy := *c
	cpy.stages = append([]Stage(nil), c.stages...)
	cpy.cropToOriginalExtent = true
	return &cpy
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

func (c *Chain) Len() int {
	return len(c.stages)
}

func (c *Chain) IsIdentity() bool {
	return len(c.stages) == 0
}

func (c *Chain) CropsToOriginalExtent() bool {
	return c.cropToOriginalExtent
}

func (c *Chain) String() string {
	if c.IsIdentity() {
		return fmt.Sprintf("%s(identity)", c.name)
	}
	parts := make([]string, 0, len(c.stages)+1)
	for _, s := range c.stages {
		parts = append(parts, s.String())
	}
	if c.cropToOriginalExtent {
		parts = append(parts, "cropToOriginalExtent")
	}
	return fmt.Sprintf("%s(%s)", c.name, strings.Join(parts, " -> "))
}
