package polar

import (
	"io"
	"math"

	"github.com/gocarina/gocsv"
)

type geometryRow struct {
	Series   Series  `csv:"series"`
	Index    int     `csv:"index"`
	Theta    float64 `csv:"theta"`
	ThetaDeg float64 `csv:"theta_deg"`
	Width    float64 `csv:"width"`
	Bottom   float64 `csv:"bottom"`
	Height   float64 `csv:"height"`
}

// WriteGeometry writes every bar of the layout, in paint order, as CSV.
func WriteGeometry(w io.Writer, layout Layout) error {
	bars := layout.Bars()

	rows := make([]*geometryRow, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, &geometryRow{
			Series:   b.Series,
			Index:    b.Index,
			Theta:    b.Theta,
			ThetaDeg: b.Theta * 180 / math.Pi,
			Width:    b.Width,
			Bottom:   b.Bottom,
			Height:   b.Height,
		})
	}

	return gocsv.Marshal(rows, w)
}
