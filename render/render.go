package render

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/carbocation/pfx"
	"github.com/carbocation/polarbars/polar"
)

// Backend rasterizes a layout onto a full, uncropped figure.
type Backend interface {
	Name() string
	Draw(f Figure, layout polar.Layout) (image.Image, error)
}

// NewBackend returns the named backend: "gg" (the default when name is empty)
// or "canvas".
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", "gg":
		return GGBackend{}, nil
	case "canvas":
		return CanvasBackend{}, nil
	}

	return nil, fmt.Errorf("unknown render backend %q (want gg or canvas)", name)
}

// Render draws the layout with b and, if the figure asks for it, crops the
// result to the bars.
func Render(b Backend, f Figure, layout polar.Layout) (image.Image, error) {
	if err := f.Validate(); err != nil {
		return nil, pfx.Err(err)
	}
	if layout.N() == 0 {
		return nil, pfx.Err(polar.ErrNoRows)
	}

	side := f.SidePixels()
	log.Printf("Rendering %d bars per series on a %dx%d canvas with the %s backend\n", layout.N(), side, side, b.Name())

	img, err := b.Draw(f, layout)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if !f.Tight {
		return img, nil
	}

	return Crop(img, TightBounds(img, f.Background)), nil
}

// fills pairs each drawable bar outline with its paint, in paint order.
func fills(f Figure, d disc, layout polar.Layout) ([][]point, []color.NRGBA) {
	var outlines [][]point
	var paints []color.NRGBA

	for _, bar := range layout.Bars() {
		pts := d.sector(bar)
		if pts == nil {
			continue
		}

		c := f.OutwardColor
		if bar.Series == polar.Inward {
			c = f.InwardColor
		}

		outlines = append(outlines, pts)
		paints = append(paints, withAlpha(c, f.Alpha))
	}

	return outlines, paints
}
