package render

import (
	"math"

	"github.com/carbocation/polarbars/polar"
)

type point struct {
	X, Y float64
}

// disc places the polar axes on a drawing surface. Coordinates have y growing
// downwards, as in image space.
type disc struct {
	CX, CY float64
	Radius float64
	RMin   float64
	RMax   float64
}

func newDisc(side float64, f Figure, layout polar.Layout) disc {
	return disc{
		CX:     side / 2,
		CY:     side / 2,
		Radius: side * f.AxesFraction / 2,
		RMin:   layout.RMin,
		RMax:   layout.RMax,
	}
}

// distance maps a data radius onto a distance from the center.
func (d disc) distance(r float64) float64 {
	return (r - d.RMin) / (d.RMax - d.RMin) * d.Radius
}

func (d disc) at(theta, dist float64) point {
	return point{
		X: d.CX + dist*math.Cos(theta),
		Y: d.CY - dist*math.Sin(theta),
	}
}

// sector outlines a bar as a closed polygon: the outer arc counter-clockwise,
// then the inner arc back. Bars wider than a full turn are drawn as a full
// ring. It returns nil when nothing of the bar falls inside the axes.
func (d disc) sector(b polar.Bar) []point {
	if b.Missing() {
		return nil
	}

	inner, outer := b.Radial()
	inner = math.Max(inner, d.RMin)
	outer = math.Min(outer, d.RMax)
	if !(outer > inner) {
		return nil
	}

	span := math.Min(math.Abs(b.Width), 2*math.Pi)
	if span == 0 {
		return nil
	}

	segments := int(math.Ceil(span / (2 * math.Pi) * 360))
	if segments < 2 {
		segments = 2
	}

	start := b.Theta - span/2
	step := span / float64(segments)
	dOuter, dInner := d.distance(outer), d.distance(inner)

	pts := make([]point, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		pts = append(pts, d.at(start+float64(i)*step, dOuter))
	}
	for i := segments; i >= 0; i-- {
		pts = append(pts, d.at(start+float64(i)*step, dInner))
	}

	return pts
}
