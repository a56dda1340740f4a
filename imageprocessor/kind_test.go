package imageprocessor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllKinds(t *testing.T) {
	kinds := AllKinds()
	require.Len(t, kinds, 8)
	seen := map[string]struct{}{}
	for _, k := range kinds {
		require.NotContains(t, k.String(), "unknown")
		seen[k.String()] = struct{}{}
	}
	require.Len(t, seen, 8)
	require.True(t, KindRandomNoiseGenerator.IsGenerator())
	require.True(t, KindMultiplyBlend.NeedsBackground())
	require.False(t, KindSepia.NeedsBackground())
}

func TestParams(t *testing.T) {
	p := Params{ParamRadius: 3, ParamIntensity: 1.5}
	require.Equal(t, 3.0, p.Get(ParamRadius, 1))
	require.Equal(t, 7.0, p.Get("missing", 7))
	require.Equal(t, "intensity=1.5, radius=3", p.String())

	c := p.Clone()
	c[ParamRadius] = 10
	require.Equal(t, 3.0, p[ParamRadius])
}

func TestErrFilterUnavailableUnwraps(t *testing.T) {
	cause := errors.New("no GPU")
	err := fmt.Errorf("stage #1: %w", ErrFilterUnavailable{Kind: KindBloom, Backend: "cv", Err: cause})
	require.ErrorIs(t, err, cause)

	var target ErrFilterUnavailable
	require.ErrorAs(t, err, &target)
	require.Equal(t, KindBloom, target.Kind)
}
