package pipeline

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/polarbars"
	"github.com/carbocation/polarbars/polar"
	"github.com/carbocation/polarbars/render"
	"github.com/carbocation/polarbars/table"
)

// Config carries every setting of a run. JSON field names are what a config
// file uses.
type Config struct {
	ConfigPath string `json:"-"`

	Input     string `json:"input"`
	Sheet     string `json:"sheet"`
	Format    string `json:"format"`
	Delimiter string `json:"delimiter"`

	OutwardColumn string `json:"outward_column"`
	InwardColumn  string `json:"inward_column"`

	Output         string `json:"output"`
	GeometryOutput string `json:"geometry_output"`
	PreviewOutput  string `json:"preview_output"`

	SizeInches      float64 `json:"size_inches"`
	DPI             float64 `json:"dpi"`
	AxesFraction    float64 `json:"axes_fraction"`
	WidthMultiplier float64 `json:"width_multiplier"`
	Baseline        float64 `json:"baseline"`
	OutwardColor    string  `json:"outward_color"`
	InwardColor     string  `json:"inward_color"`
	Background      string  `json:"background"`
	Alpha           float64 `json:"alpha"`
	Tight           bool    `json:"tight"`
	Backend         string  `json:"backend"`

	PrintTable bool `json:"print_table"`
	Show       bool `json:"show"`
}

// DefaultConfig reads Book1.xlsx and writes S1Meghanew.png at 1200 DPI with
// the "Reads top" column drawn outward in red and "Reads bottom" drawn inward
// in black.
func DefaultConfig() Config {
	return Config{
		Input:           "Book1.xlsx",
		OutwardColumn:   "Reads top",
		InwardColumn:    "Reads bottom",
		Output:          "S1Meghanew",
		SizeInches:      8,
		DPI:             1200,
		AxesFraction:    0.77,
		WidthMultiplier: polar.DefaultWidthMultiplier,
		Baseline:        0,
		OutwardColor:    "red",
		InwardColor:     "black",
		Background:      "white",
		Alpha:           1,
		Tight:           true,
		Backend:         "gg",
		PrintTable:      true,
	}
}

// ParseJSONConfigFromPath overlays the JSON file at path onto base. Fields the
// file does not mention keep their base values.
func ParseJSONConfigFromPath(path string, base Config) (Config, error) {
	out := base
	out.ConfigPath = path

	f, err := os.Open(polarbars.ExpandHome(path))
	if err != nil {
		return base, pfx.Err(err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return base, pfx.Err(err)
	}

	return out, nil
}

// ExpandPaths interprets a leading ~ in every path setting.
func (c Config) ExpandPaths() Config {
	c.Input = polarbars.ExpandHome(c.Input)
	c.Output = polarbars.ExpandHome(c.Output)
	c.GeometryOutput = polarbars.ExpandHome(c.GeometryOutput)
	c.PreviewOutput = polarbars.ExpandHome(c.PreviewOutput)

	return c
}

// TableOptions translates the input settings for the table loader.
func (c Config) TableOptions() (table.Options, error) {
	opts := table.Options{
		Format: table.Format(c.Format),
		Sheet:  c.Sheet,
	}

	switch opts.Format {
	case table.FormatAuto, table.FormatXLSX, table.FormatXLS, table.FormatDelimited:
	default:
		return opts, fmt.Errorf("unknown input format %q", c.Format)
	}

	switch c.Delimiter {
	case "":
	case `\t`, "tab":
		opts.Delimiter = '\t'
	default:
		r := []rune(c.Delimiter)
		if len(r) != 1 {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
		}
		opts.Delimiter = r[0]
	}

	return opts, nil
}

// LayoutOptions translates the geometry settings for the angle mapper.
func (c Config) LayoutOptions() polar.LayoutOptions {
	return polar.LayoutOptions{
		Baseline:        c.Baseline,
		WidthMultiplier: c.WidthMultiplier,
	}
}

// Figure translates the drawing settings for the renderer.
func (c Config) Figure() (render.Figure, error) {
	f := render.Figure{
		SizeInches:   c.SizeInches,
		DPI:          c.DPI,
		AxesFraction: c.AxesFraction,
		Alpha:        c.Alpha,
		Tight:        c.Tight,
	}

	colors := []struct {
		name string
		code string
		dst  *color.Color
	}{
		{"outward color", c.OutwardColor, &f.OutwardColor},
		{"inward color", c.InwardColor, &f.InwardColor},
		{"background", c.Background, &f.Background},
	}
	for _, entry := range colors {
		parsed, err := render.ParseColor(entry.code)
		if err != nil {
			return f, fmt.Errorf("%s: %w", entry.name, err)
		}
		*entry.dst = parsed
	}

	return f, f.Validate()
}
