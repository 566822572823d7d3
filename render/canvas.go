package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/carbocation/polarbars/polar"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// CanvasBackend lays the figure out in millimetres with tdewolff/canvas and
// rasterizes it at the figure's DPI.
type CanvasBackend struct{}

func (CanvasBackend) Name() string { return "canvas" }

func (CanvasBackend) Draw(f Figure, layout polar.Layout) (image.Image, error) {
	side := f.SideMM()

	c := canvas.New(side, side)
	ctx := canvas.NewContext(c)

	ctx.SetStrokeColor(color.Transparent)

	d := newDisc(side, f, layout)
	outlines, paints := fills(f, d, layout)

	// Sector outlines are y-down; canvas paths are y-up from the bottom-left.
	for i, pts := range outlines {
		p := &canvas.Path{}
		p.MoveTo(pts[0].X, side-pts[0].Y)
		for _, pt := range pts[1:] {
			p.LineTo(pt.X, side-pt.Y)
		}
		p.Close()

		ctx.SetFillColor(paints[i])
		ctx.DrawPath(0, 0, p)
	}

	bars := rasterizer.Draw(c, canvas.DPI(f.DPI), canvas.DefaultColorSpace)

	// The rasterizer leaves uncovered pixels transparent, so lay the bars
	// over a solid background.
	out := image.NewRGBA(bars.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(f.Background), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), bars, bars.Bounds().Min, draw.Over)

	return out, nil
}
