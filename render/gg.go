package render

import (
	"image"

	"github.com/carbocation/polarbars/polar"
	"github.com/fogleman/gg"
)

// GGBackend draws in pixel space with fogleman/gg.
type GGBackend struct{}

func (GGBackend) Name() string { return "gg" }

func (GGBackend) Draw(f Figure, layout polar.Layout) (image.Image, error) {
	side := f.SidePixels()

	// dc represents the drawing canvas.
	dc := gg.NewContext(side, side)
	dc.SetColor(f.Background)
	dc.Clear()

	d := newDisc(float64(side), f, layout)
	outlines, paints := fills(f, d, layout)

	for i, pts := range outlines {
		dc.NewSubPath()
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()

		dc.SetColor(paints[i])
		dc.Fill()
	}

	return dc.Image(), nil
}
