// stage.go defines Stage, one image operation with bound parameters.

// Package filter composes image operations into chains and applies
// them to frames.
package filter

import (
	"fmt"

	"github.com/xaionaro-go/camerafilter/imageprocessor"
)

// Stage is immutable once constructed.
type Stage struct {
	kind   imageprocessor.Kind
	params imageprocessor.Params

	// layer, if set, is a generator stage whose output, cropped to the
	// frame extent, is bound as the background of this stage.
	layer *Stage
}

func NewStage(kind imageprocessor.Kind, params imageprocessor.Params) Stage {
	return Stage{
		kind:   kind,
		params: params.Clone(),
	}
}

// WithLayer returns a copy of the stage consuming the output of the
// given generator as its second input.
func (s Stage) WithLayer(layer Stage) Stage {
	s.layer = &layer
	return s
}

func (s Stage) Kind() imageprocessor.Kind {
	return s.kind
}

func (s Stage) Params() imageprocessor.Params {
	return s.params.Clone()
}

func (s Stage) Layer() (Stage, bool) {
	if s.layer == nil {
		return Stage{}, false
	}
	return *s.layer, true
}

func (s Stage) String() string {
	str := s.kind.String()
	if len(s.params) > 0 {
		str += fmt.Sprintf("(%s)", s.params)
	}
	if s.layer != nil {
		str += fmt.Sprintf("[%s]", s.layer)
	}
	return str
}
