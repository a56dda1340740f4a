package imageprocessor

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ParamIntensity = "intensity"
	ParamRadius    = "radius"
)

// Params are the named numeric inputs of an operation.
type Params map[string]float64

func (p Params) Get(name string, defaultValue float64) float64 {
	v, ok := p[name]
	if !ok {
		return defaultValue
	}
	return v
}

func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, p[k]))
	}
	return strings.Join(parts, ", ")
}
