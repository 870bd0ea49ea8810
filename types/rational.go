package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Rational is used for frame rates and pixel aspect ratios.
type Rational struct {
	Num int
	Den int
}

const (
	// rationalPrecision is the tolerance when turning a decimal into a fraction.
	rationalPrecision = 1e-6

	ntscDenominator = 1001
	ntscTolerance   = 1e-2
)

// RationalFromString parses "num/den", a decimal ("12.5") or an
// approximate rate prefixed with '~' ("~29.97"), which snaps to the closest
// NTSC-style rate (N*1000/1001) if there is one near enough.
func RationalFromString(s string) (*Rational, error) {
	if s == "" {
		return nil, fmt.Errorf("unable to parse a rational from an empty string")
	}

	var (
		r   Rational
		err error
	)
	switch {
	case strings.Contains(s, "/"):
		_, err = fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den)
	case strings.HasPrefix(s, "~"):
		var f float64
		f, err = strconv.ParseFloat(s[1:], 64)
		r = RationalFromApproxFloat64(f)
	default:
		var f float64
		f, err = strconv.ParseFloat(s, 64)
		r = RationalFromFloat64(f)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse a rational from %q: %w", s, err)
	}
	if r.Den == 0 {
		return nil, fmt.Errorf("the denominator of %q is zero", s)
	}
	return &r, nil
}

// RationalFromFloat64 returns the simplest fraction within 1e-6 of f.
func RationalFromFloat64(f float64) Rational {
	if f == math.Trunc(f) {
		return Rational{Num: int(f), Den: 1}
	}
	num, den := approximateFraction(f, rationalPrecision)
	return Rational{Num: num, Den: den}
}

// RationalFromApproxFloat64 is RationalFromFloat64 preferring the NTSC rates
// (23.976 is 24000/1001, 29.97 is 30000/1001 and so on).
func RationalFromApproxFloat64(f float64) Rational {
	if f == math.Trunc(f) {
		return Rational{Num: int(f), Den: 1}
	}
	ntsc := Rational{Num: int(math.Ceil(f)) * 1000, Den: ntscDenominator}
	if math.Abs(ntsc.Float64()-f) < ntscTolerance {
		return ntsc
	}
	return RationalFromFloat64(f)
}

// approximateFraction returns the first continued fraction convergent of f
// within the precision.
func approximateFraction(f, precision float64) (num, den int) {
	var (
		h0, h1 = 0, 1
		k0, k1 = 1, 0
		x      = f
	)
	for range 64 {
		a := math.Floor(x)
		h0, h1 = h1, int(a)*h1+h0
		k0, k1 = k1, int(a)*k1+k0
		if math.Abs(f-float64(h1)/float64(k1)) <= precision {
			break
		}
		frac := x - a
		if frac == 0 {
			break
		}
		x = 1 / frac
	}
	return h1, k1
}

// FrameDuration interprets the rational as a frame rate and returns the
// duration of one frame, or zero if the rate is not positive.
func (r Rational) FrameDuration() time.Duration {
	if r.Num <= 0 || r.Den <= 0 {
		return 0
	}
	return time.Duration(int64(time.Second) * int64(r.Den) / int64(r.Num))
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rational) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal a rational from %s: %w", b, err)
	}
	parsed, err := RationalFromString(s)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
