// Package render draws a polar.Layout as a raster image.
package render

import (
	"fmt"
	"image/color"
	"math"
)

const mmPerInch = 25.4

// Figure describes the physical canvas and the styling of the two series.
// Nothing here produces axis decorations: no grid, ticks, labels or frame are
// ever drawn.
type Figure struct {
	// SizeInches is the side of the square figure.
	SizeInches float64

	// DPI is the raster resolution, in dots per inch.
	DPI float64

	// AxesFraction is the polar disc's diameter as a fraction of the figure
	// side.
	AxesFraction float64

	OutwardColor color.Color
	InwardColor  color.Color
	Background   color.Color

	// Alpha is the opacity of both bar series, from 0 to 1.
	Alpha float64

	// Tight crops the output to the drawn bars with no padding.
	Tight bool
}

// DefaultFigure is an 8 inch square at 1200 DPI with red outward bars, black
// inward bars on white, cropped tight.
func DefaultFigure() Figure {
	return Figure{
		SizeInches:   8,
		DPI:          1200,
		AxesFraction: 0.77,
		OutwardColor: color.NRGBA{R: 255, A: 255},
		InwardColor:  color.NRGBA{A: 255},
		Background:   color.White,
		Alpha:        1,
		Tight:        true,
	}
}

// Validate rejects figures that cannot be drawn.
func (f Figure) Validate() error {
	switch {
	case !(f.SizeInches > 0) || math.IsInf(f.SizeInches, 0):
		return fmt.Errorf("figure size must be positive, got %g", f.SizeInches)
	case !(f.DPI > 0) || math.IsInf(f.DPI, 0):
		return fmt.Errorf("DPI must be positive, got %g", f.DPI)
	case !(f.AxesFraction > 0) || f.AxesFraction > 1:
		return fmt.Errorf("axes fraction must be in (0, 1], got %g", f.AxesFraction)
	case f.OutwardColor == nil || f.InwardColor == nil || f.Background == nil:
		return fmt.Errorf("figure colors must be set")
	}

	return nil
}

// SidePixels is the width and height of the uncropped raster.
func (f Figure) SidePixels() int {
	return int(math.Round(f.SizeInches * f.DPI))
}

// SideMM is the figure side in millimetres.
func (f Figure) SideMM() float64 {
	return f.SizeInches * mmPerInch
}
