package preset

import (
	"fmt"
)

type ErrUnknownID struct {
	Value string
}

func (e ErrUnknownID) Error() string {
	return fmt.Sprintf("unknown filter '%s'", e.Value)
}
