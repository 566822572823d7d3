package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/polarbars"
	"github.com/carbocation/polarbars/compileinfo"
	"github.com/carbocation/polarbars/pipeline"
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

func main() {
	fmt.Fprintf(os.Stderr, "%s\n", compileinfo.Get())

	defaults := pipeline.DefaultConfig()

	var configPath string
	flag.StringVar(&configPath, "config", "", "Optional JSON file with settings. Flags given on the command line override it.")

	cfg := defaults
	flag.StringVar(&cfg.Input, "input", defaults.Input, "Spreadsheet to plot: .xlsx, .xls, or delimited text (.csv/.tsv/.txt, optionally .gz/.bz2/.xz/.zip). May be a gs:// path.")
	flag.StringVar(&cfg.Sheet, "sheet", defaults.Sheet, "Worksheet to read from a workbook. Defaults to the first sheet.")
	flag.StringVar(&cfg.Format, "format", defaults.Format, "Force the input format: xlsx, xls or delimited. Defaults to guessing from the extension.")
	flag.StringVar(&cfg.Delimiter, "delimiter", defaults.Delimiter, "Delimiter for text input ('tab' for tabs). Defaults to detecting it.")
	flag.StringVar(&cfg.OutwardColumn, "outward", defaults.OutwardColumn, "Column whose values are drawn outward from the baseline")
	flag.StringVar(&cfg.InwardColumn, "inward", defaults.InwardColumn, "Column whose values are drawn inward from the baseline")
	flag.StringVar(&cfg.Output, "output", defaults.Output, "Image to write. The extension picks the format; none means .png. May be a gs:// path.")
	flag.StringVar(&cfg.GeometryOutput, "geometry", defaults.GeometryOutput, "Optional CSV file describing every drawn bar")
	flag.StringVar(&cfg.PreviewOutput, "preview", defaults.PreviewOutput, "Optional PNG with both series on Cartesian axes")
	flag.Float64Var(&cfg.SizeInches, "size", defaults.SizeInches, "Side of the square figure, in inches")
	flag.Float64Var(&cfg.DPI, "dpi", defaults.DPI, "Output resolution in dots per inch")
	flag.Float64Var(&cfg.AxesFraction, "axes", defaults.AxesFraction, "Polar disc diameter as a fraction of the figure side")
	flag.Float64Var(&cfg.WidthMultiplier, "widthmultiplier", defaults.WidthMultiplier, "Bar width in angular slots. Values above 1 make neighbouring bars overlap.")
	flag.Float64Var(&cfg.Baseline, "baseline", defaults.Baseline, "Radius that both series grow from")
	flag.StringVar(&cfg.OutwardColor, "outwardcolor", defaults.OutwardColor, "Color of the outward bars (name or #rrggbb)")
	flag.StringVar(&cfg.InwardColor, "inwardcolor", defaults.InwardColor, "Color of the inward bars (name or #rrggbb)")
	flag.StringVar(&cfg.Background, "background", defaults.Background, "Background color, or 'none' for transparent")
	flag.Float64Var(&cfg.Alpha, "alpha", defaults.Alpha, "Bar opacity. From 0 (transparent) to 1 (opaque)")
	flag.BoolVar(&cfg.Tight, "tight", defaults.Tight, "Crop the image to the bars with no padding")
	flag.StringVar(&cfg.Backend, "backend", defaults.Backend, "Rasterizer: gg or canvas")
	flag.BoolVar(&cfg.PrintTable, "print", defaults.PrintTable, "Print the loaded table to stdout")
	flag.BoolVar(&cfg.Show, "show", defaults.Show, "Open the image in the system viewer when done")
	flag.Parse()

	if configPath != "" {
		fromFile, err := pipeline.ParseJSONConfigFromPath(configPath, defaults)
		if err != nil {
			log.Fatalln(err)
		}
		cfg = overrideWithFlags(fromFile, cfg)
	}

	ctx := context.Background()

	var err error
	if needsStorage(cfg) {
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	res, err := pipeline.Run(ctx, cfg, client, os.Stdout)
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("Done: %d rows, radial limits [%g, %g], image %s\n", res.Rows, res.RMin, res.RMax, res.Output)
}

// overrideWithFlags copies the settings that were explicitly set on the
// command line from flagged onto base.
func overrideWithFlags(base, flagged pipeline.Config) pipeline.Config {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			base.Input = flagged.Input
		case "sheet":
			base.Sheet = flagged.Sheet
		case "format":
			base.Format = flagged.Format
		case "delimiter":
			base.Delimiter = flagged.Delimiter
		case "outward":
			base.OutwardColumn = flagged.OutwardColumn
		case "inward":
			base.InwardColumn = flagged.InwardColumn
		case "output":
			base.Output = flagged.Output
		case "geometry":
			base.GeometryOutput = flagged.GeometryOutput
		case "preview":
			base.PreviewOutput = flagged.PreviewOutput
		case "size":
			base.SizeInches = flagged.SizeInches
		case "dpi":
			base.DPI = flagged.DPI
		case "axes":
			base.AxesFraction = flagged.AxesFraction
		case "widthmultiplier":
			base.WidthMultiplier = flagged.WidthMultiplier
		case "baseline":
			base.Baseline = flagged.Baseline
		case "outwardcolor":
			base.OutwardColor = flagged.OutwardColor
		case "inwardcolor":
			base.InwardColor = flagged.InwardColor
		case "background":
			base.Background = flagged.Background
		case "alpha":
			base.Alpha = flagged.Alpha
		case "tight":
			base.Tight = flagged.Tight
		case "backend":
			base.Backend = flagged.Backend
		case "print":
			base.PrintTable = flagged.PrintTable
		case "show":
			base.Show = flagged.Show
		}
	})

	return base
}

func needsStorage(cfg pipeline.Config) bool {
	for _, path := range []string{cfg.Input, cfg.Output, cfg.GeometryOutput, cfg.PreviewOutput} {
		if polarbars.IsGoogleStoragePath(path) {
			return true
		}
	}

	return false
}
