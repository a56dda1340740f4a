package imageprocessor

import (
	"fmt"
)

// ErrFilterUnavailable means the backend cannot construct the operation,
// e.g. it is not supported on the runtime platform or a parameter is invalid.
type ErrFilterUnavailable struct {
	Kind    Kind
	Backend string
	Err     error
}

func (e ErrFilterUnavailable) Error() string {
	msg := fmt.Sprintf("filter %s is not available", e.Kind)
	if e.Backend != "" {
		msg += fmt.Sprintf(" in backend %s", e.Backend)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e ErrFilterUnavailable) Unwrap() error {
	return e.Err
}

// ErrEmptyOutput means an operation yielded no image.
type ErrEmptyOutput struct {
	Kind Kind
}

func (e ErrEmptyOutput) Error() string {
	return fmt.Sprintf("filter %s produced no image", e.Kind)
}

// ErrMissingInput means a required input image was not bound.
type ErrMissingInput struct {
	Kind  Kind
	Input string
}

func (e ErrMissingInput) Error() string {
	return fmt.Sprintf("filter %s requires input '%s'", e.Kind, e.Input)
}
