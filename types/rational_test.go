package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRationalFromString(t *testing.T) {
	tests := []struct {
		input          string
		expectedNum    int
		expectedDen    int
		expectingError bool
	}{
		{"30", 30, 1, false},
		{"30/1", 30, 1, false},
		{"30000/1001", 30000, 1001, false}, // NTSC
		{"~29.97", 30000, 1001, false},     // NTSC
		{"~23.976", 24000, 1001, false},    // NTSC
		{"~25", 25, 1, false},
		{"0.5", 1, 2, false},
		{"1/0", 0, 0, true},
		{"invalid", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, test := range tests {
		rational, err := RationalFromString(test.input)
		if test.expectingError {
			require.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		require.Equal(t, test.expectedNum, rational.Num, test.input)
		require.Equal(t, test.expectedDen, rational.Den, test.input)
	}
}

func TestRationalInterval(t *testing.T) {
	require.Equal(t, 40*time.Millisecond, Rational{Num: 25, Den: 1}.Interval())
	require.Equal(t, time.Duration(0), Rational{Num: 0, Den: 1}.Interval())
}
