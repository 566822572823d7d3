package render

import (
	"image/color"
	"io"
	"math"

	"github.com/carbocation/polarbars/polar"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// WritePreview renders both series on ordinary Cartesian axes as a PNG: the
// outward series above zero and the inward series mirrored below it. It is a
// quick check of the numbers behind the polar figure.
func WritePreview(w io.Writer, outward, inward []float64, f Figure) error {
	lo, hi := polar.RadialLimits(outward, inward)

	graph := chart.Chart{
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "Row",
		},
		YAxis: chart.YAxis{
			// Half the polar range is exactly the largest bar
			Range: &chart.ContinuousRange{Min: lo / 2, Max: hi / 2},
		},
		Series: []chart.Series{
			previewSeries("Outward", outward, 1, f.OutwardColor),
			previewSeries("Inward", inward, -1, f.InwardColor),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

func previewSeries(name string, vals []float64, sign float64, c color.Color) chart.ContinuousSeries {
	xs := make([]float64, 0, len(vals))
	ys := make([]float64, 0, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, sign*v)
	}

	// Pad to at least two X values for go-chart
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	} else if len(xs) == 0 {
		xs = []float64{0, 1}
		ys = []float64{0, 0}
	}

	n := withAlpha(c, 1)

	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A},
			StrokeWidth: 2,
		},
	}
}
