package polar

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// finite returns the values of s that are neither NaN nor infinite.
func finite(s []float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}

	return out
}

// MaxFinite returns the largest finite value in s, and false if s has none.
func MaxFinite(s []float64) (float64, bool) {
	f := finite(s)
	if len(f) == 0 {
		return 0, false
	}

	return floats.Max(f), true
}

// RadialLimits returns the radial axis range for an outward series y1 and an
// inward series y2. With M the larger of the two maxima the range is [-2M, 2M],
// which puts the zero baseline halfway out from the center.
//
// When M is not positive the range falls back to twice the largest magnitude
// in either series, and to [-1, 1] when every value is zero or missing, so the
// result always has a non-zero span.
func RadialLimits(y1, y2 []float64) (lo, hi float64) {
	all := append(finite(y1), finite(y2)...)
	if len(all) == 0 {
		return -1, 1
	}

	if m := floats.Max(all); m > 0 {
		return -2 * m, 2 * m
	}

	magnitude := math.Max(math.Abs(floats.Max(all)), math.Abs(floats.Min(all)))
	if magnitude == 0 {
		return -1, 1
	}

	return -2 * magnitude, 2 * magnitude
}
