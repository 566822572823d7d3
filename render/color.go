package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Single-letter color codes, as accepted by most plotting tools
var shortColors = map[string]string{
	"b": "blue",
	"g": "green",
	"r": "red",
	"c": "cyan",
	"m": "magenta",
	"y": "yellow",
	"k": "black",
	"w": "white",
}

// ParseColor accepts an SVG color name ("red"), a single-letter code ("k"),
// "none"/"transparent", or a hex code in #rrggbb or #rrggbbaa form.
func ParseColor(code string) (color.Color, error) {
	code = strings.ToLower(strings.TrimSpace(code))

	if long, ok := shortColors[code]; ok {
		code = long
	}

	switch code {
	case "none", "transparent":
		return color.Transparent, nil
	}

	if c, ok := colornames.Map[code]; ok {
		return c, nil
	}

	return nrgbaFromColorCode(code)
}

func nrgbaFromColorCode(colorCode string) (color.Color, error) {
	hex := strings.TrimPrefix(colorCode, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("unrecognized color %q", colorCode)
	}

	// Parse each channel
	channels := [4]uint8{0, 0, 0, 255}
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("unrecognized color %q: %v", colorCode, err)
		}
		channels[i] = uint8(v)
	}

	return color.NRGBA{
		R: channels[0],
		G: channels[1],
		B: channels[2],
		A: channels[3],
	}, nil
}

// withAlpha scales the color's opacity by alpha, which is clamped to [0, 1].
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*alpha + 0.5)

	return n
}
