package types

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Rational is used for frame rates, e.g. 30000/1001.
type Rational struct {
	Num int
	Den int
}

func newNTSCRationalFromFloat64(f float64) *big.Rat {
	den := 1001 // common denominator for NTSC frame rates
	num := math.Ceil(f) * 1000
	r := big.NewRat(int64(num), int64(den))
	confirmValue, _ := r.Float64()
	if math.Abs(f-confirmValue) < 1e-2 {
		return r
	}
	return nil
}

func RationalFromApproxFloat64(fps float64) (r Rational) {
	if float64(int(fps)) == fps {
		r.Num = int(fps)
		r.Den = 1
		return
	}

	rat := newNTSCRationalFromFloat64(fps)
	if rat != nil {
		r.Num = int(rat.Num().Int64())
		r.Den = int(rat.Denom().Int64())
		return
	}

	r.Num = int(fps * 1000000)
	r.Den = 1000000

	gcd := big.NewInt(0).GCD(nil, nil, big.NewInt(int64(r.Num)), big.NewInt(int64(r.Den))).Int64()
	r.Num /= int(gcd)
	r.Den /= int(gcd)
	return
}

func RationalFromString(s string) (Rational, error) {
	var r Rational
	switch {
	case len(s) == 0:
		return Rational{}, fmt.Errorf("unable to parse Rational from empty string")
	case strings.Contains(s, "/"):
		if _, err := fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den); err != nil {
			return Rational{}, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
	default:
		fps, err := strconv.ParseFloat(strings.TrimPrefix(s, "~"), 64)
		if err != nil {
			return Rational{}, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromApproxFloat64(fps)
	}
	if r.Den == 0 {
		return Rational{}, fmt.Errorf("denominator cannot be zero")
	}
	return r, nil
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Interval returns the duration of one period, e.g. the frame interval
// for a frame rate. Returns zero for non-positive rates.
func (r Rational) Interval() time.Duration {
	if r.Num <= 0 || r.Den <= 0 {
		return 0
	}
	return time.Duration(int64(time.Second) * int64(r.Den) / int64(r.Num))
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Rational) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rational) UnmarshalText(b []byte) error {
	v, err := RationalFromString(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
