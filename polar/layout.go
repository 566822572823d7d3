package polar

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoRows         = errors.New("no rows to plot")
	ErrLengthMismatch = errors.New("series lengths differ")
	ErrBadWidth       = errors.New("width multiplier must be a positive number")
)

// Series identifies which of the two mirrored datasets a bar belongs to.
type Series string

const (
	Outward Series = "outward"
	Inward  Series = "inward"
)

// Bar is one annular sector: centered on Theta, spanning Width radians and
// running radially from Bottom to Bottom+Height. Height may be negative.
type Bar struct {
	Series Series
	Index  int
	Theta  float64
	Width  float64
	Bottom float64
	Height float64
}

// Radial returns the bar's radial interval in ascending order.
func (b Bar) Radial() (inner, outer float64) {
	top := b.Bottom + b.Height
	if top < b.Bottom {
		return top, b.Bottom
	}

	return b.Bottom, top
}

// Missing reports whether the bar has no value to draw.
func (b Bar) Missing() bool {
	return math.IsNaN(b.Height) || math.IsInf(b.Height, 0)
}

// Layout holds both bar series plus the radial axis range they are drawn
// against.
type Layout struct {
	Outward []Bar
	Inward  []Bar
	RMin    float64
	RMax    float64
}

// Bars returns the outward bars followed by the inward bars, which is also
// the order they are painted in.
func (l Layout) Bars() []Bar {
	out := make([]Bar, 0, len(l.Outward)+len(l.Inward))
	out = append(out, l.Outward...)

	return append(out, l.Inward...)
}

// N is the number of rows plotted.
func (l Layout) N() int {
	return len(l.Outward)
}

type LayoutOptions struct {
	// Baseline is the radius both series grow from.
	Baseline float64

	// WidthMultiplier scales the angular slot width. It must be positive.
	WidthMultiplier float64
}

// DefaultLayoutOptions grows both series from zero with bars
// DefaultWidthMultiplier slots wide.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{WidthMultiplier: DefaultWidthMultiplier}
}

// NewLayout places outward[i] as a bar growing out from the baseline and
// inward[i] as a bar growing in from it, both at Angles(n)[i].
func NewLayout(outward, inward []float64, opts LayoutOptions) (Layout, error) {
	if len(outward) != len(inward) {
		return Layout{}, fmt.Errorf("%w: outward has %d values, inward has %d", ErrLengthMismatch, len(outward), len(inward))
	}

	n := len(outward)
	if n == 0 {
		return Layout{}, ErrNoRows
	}

	if m := opts.WidthMultiplier; !(m > 0) || math.IsInf(m, 1) {
		return Layout{}, fmt.Errorf("%w: got %g", ErrBadWidth, m)
	}

	theta := Angles(n)
	width := BarWidth(n, opts.WidthMultiplier)

	layout := Layout{
		Outward: make([]Bar, n),
		Inward:  make([]Bar, n),
	}
	layout.RMin, layout.RMax = RadialLimits(outward, inward)

	for i := 0; i < n; i++ {
		layout.Outward[i] = Bar{
			Series: Outward,
			Index:  i,
			Theta:  theta[i],
			Width:  width,
			Bottom: opts.Baseline,
			Height: outward[i],
		}
		layout.Inward[i] = Bar{
			Series: Inward,
			Index:  i,
			Theta:  theta[i],
			Width:  width,
			Bottom: opts.Baseline,
			Height: -inward[i],
		}
	}

	return layout, nil
}
