// Package polar maps row-indexed values onto the angular and radial
// coordinates of a polar bar chart.
package polar

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultWidthMultiplier widens every bar to ten angular slots, so that
// neighbouring bars overlap and read as a continuous ring.
const DefaultWidthMultiplier = 10.0

// SlotWidth is the angle, in radians, allotted to each of n evenly spaced
// bars.
func SlotWidth(n int) float64 {
	return 2 * math.Pi / float64(n)
}

// BarWidth is the drawn angular width of each of n bars.
func BarWidth(n int, multiplier float64) float64 {
	return SlotWidth(n) * multiplier
}

// Angles returns n bar-center angles in radians, measured counter-clockwise
// from the positive x axis. Index 0 sits at the top (π/2) and successive
// indices step clockwise by SlotWidth(n). It returns nil for n < 1.
func Angles(n int) []float64 {
	if n < 1 {
		return nil
	}

	// n+1 points across [0, 2π] with the endpoint dropped gives n evenly
	// spaced points on [0, 2π).
	theta := floats.Span(make([]float64, n+1), 0, 2*math.Pi)[:n]

	for i, t := range theta {
		theta[i] = math.Pi/2 - t
	}

	return theta
}

// NormalizeAngle maps a onto [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// math.Mod of a tiny negative number can round up to exactly 2π
	if a >= 2*math.Pi {
		a = 0
	}

	return a
}
