// Package preset provides the catalog of user-selectable filters.
package preset

import (
	"fmt"
	"strings"
)

type ID int

const (
	IDOriginal = ID(iota)
	IDVintage
	IDNoir
	IDBloom
	endOfID
)

func (id ID) String() string {
	switch id {
	case IDOriginal:
		return "original"
	case IDVintage:
		return "vintage"
	case IDNoir:
		return "noir"
	case IDBloom:
		return "bloom"
	default:
		return fmt.Sprintf("unknown_%d_", int(id))
	}
}

func (id ID) IsValid() bool {
	return id >= IDOriginal && id < endOfID
}

func ParseID(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id := IDOriginal; id < endOfID; id++ {
		if id.String() == s {
			return id, nil
		}
	}
	return IDOriginal, ErrUnknownID{Value: s}
}

func (id ID) MarshalText() ([]byte, error) {
	if !id.IsValid() {
		return nil, ErrUnknownID{Value: id.String()}
	}
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	v, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Set implements pflag.Value.
func (id *ID) Set(s string) error {
	return id.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (id *ID) Type() string {
	return "filter"
}
