package filter

import (
	"fmt"
	"image"
)

type ErrEmptyChain struct {
	Name string
}

func (e ErrEmptyChain) Error() string {
	return fmt.Sprintf("chain '%s' has no stages", e.Name)
}

// ErrExtentChanged means a chain produced a frame of different
// dimensions than its input.
type ErrExtentChanged struct {
	Expected image.Rectangle
	Actual   image.Rectangle
}

func (e ErrExtentChanged) Error() string {
	return fmt.Sprintf("the chain changed the frame extent from %v to %v", e.Expected, e.Actual)
}

// ErrStage annotates an error with the stage it happened at.
type ErrStage struct {
	Index int
	Stage Stage
	Err   error
}

func (e ErrStage) Error() string {
	return fmt.Sprintf("stage #%d (%s): %v", e.Index, e.Stage, e.Err)
}

func (e ErrStage) Unwrap() error {
	return e.Err
}
