// Package pipeline turns a spreadsheet into a mirrored polar bar chart in five
// explicit stages: Load, Extract, ComputeLayout, Render and Save.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/polarbars"
	"github.com/carbocation/polarbars/polar"
	"github.com/carbocation/polarbars/render"
	"github.com/carbocation/polarbars/table"
)

// Result summarizes a finished run.
type Result struct {
	Rows   int
	RMin   float64
	RMax   float64
	Output string
	Bounds image.Rectangle
}

// Load reads the input table.
func Load(ctx context.Context, cfg Config, client *storage.Client) (*table.Table, error) {
	opts, err := cfg.TableOptions()
	if err != nil {
		return nil, err
	}

	return table.Load(ctx, cfg.Input, opts, client)
}

// Extract pulls the outward and inward series out of the table. Both come
// from the same rows, so they always have the same length.
func Extract(t *table.Table, outwardColumn, inwardColumn string) (outward, inward []float64, err error) {
	outward, err = t.Float64s(outwardColumn)
	if err != nil {
		return nil, nil, err
	}

	inward, err = t.Float64s(inwardColumn)
	if err != nil {
		return nil, nil, err
	}

	return outward, inward, nil
}

// ComputeLayout places both series on the polar axes.
func ComputeLayout(outward, inward []float64, cfg Config) (polar.Layout, error) {
	return polar.NewLayout(outward, inward, cfg.LayoutOptions())
}

// Render draws the layout as configured.
func Render(layout polar.Layout, cfg Config) (image.Image, error) {
	fig, err := cfg.Figure()
	if err != nil {
		return nil, err
	}

	backend, err := render.NewBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return render.Render(backend, fig, layout)
}

// OutputPath is path with ".png" appended when it has no extension.
func OutputPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".png"
	}

	return path
}

// Save encodes img to path (local or gs://), choosing the encoding from the
// extension. It returns the path actually written.
func Save(ctx context.Context, img image.Image, path string, client *storage.Client) (string, error) {
	path = OutputPath(path)

	format, err := render.FormatFromPath(path)
	if err != nil {
		return path, pfx.Err(err)
	}

	err = writeTo(ctx, path, client, func(w io.Writer) error {
		return render.Encode(w, img, format)
	})
	if err != nil {
		return path, err
	}

	log.Printf("Wrote %dx%d image to %s\n", img.Bounds().Dx(), img.Bounds().Dy(), path)

	return path, nil
}

// writeTo publishes whatever write produces at path, or nothing if it fails.
func writeTo(ctx context.Context, path string, client *storage.Client, write func(io.Writer) error) error {
	return polarbars.WriteLocalOrGoogleStorage(ctx, path, client, write)
}

func check(cfg Config) error {
	if cfg.Input == "" {
		return fmt.Errorf("no input file given")
	}
	if cfg.Output == "" {
		return fmt.Errorf("no output file given")
	}
	if _, err := cfg.TableOptions(); err != nil {
		return err
	}
	if _, err := cfg.Figure(); err != nil {
		return err
	}
	if m := cfg.WidthMultiplier; !(m > 0) || math.IsInf(m, 1) {
		return fmt.Errorf("%w: got %g", polar.ErrBadWidth, m)
	}
	if _, err := render.NewBackend(cfg.Backend); err != nil {
		return err
	}
	if _, err := render.FormatFromPath(OutputPath(cfg.Output)); err != nil {
		return err
	}

	return nil
}

// Run executes every stage in order. Nothing is written unless loading,
// extraction and layout all succeed. stdout receives the table printout when
// cfg.PrintTable is set; it may be nil otherwise.
func Run(ctx context.Context, cfg Config, client *storage.Client, stdout io.Writer) (Result, error) {
	cfg = cfg.ExpandPaths()

	if err := check(cfg); err != nil {
		return Result{}, err
	}

	t, err := Load(ctx, cfg, client)
	if err != nil {
		return Result{}, err
	}

	if cfg.PrintTable && stdout != nil {
		if err := t.WriteTSV(stdout); err != nil {
			return Result{}, err
		}
	}

	outward, inward, err := Extract(t, cfg.OutwardColumn, cfg.InwardColumn)
	if err != nil {
		return Result{}, err
	}

	layout, err := ComputeLayout(outward, inward, cfg)
	if err != nil {
		return Result{}, err
	}
	log.Printf("Plotting %d rows with radial limits [%g, %g]\n", layout.N(), layout.RMin, layout.RMax)

	img, err := Render(layout, cfg)
	if err != nil {
		return Result{}, err
	}

	out, err := Save(ctx, img, cfg.Output, client)
	if err != nil {
		return Result{}, err
	}

	if cfg.GeometryOutput != "" {
		err := writeTo(ctx, cfg.GeometryOutput, client, func(w io.Writer) error {
			return polar.WriteGeometry(w, layout)
		})
		if err != nil {
			return Result{}, err
		}
	}

	if cfg.PreviewOutput != "" {
		fig, err := cfg.Figure()
		if err != nil {
			return Result{}, err
		}
		err = writeTo(ctx, cfg.PreviewOutput, client, func(w io.Writer) error {
			return render.WritePreview(w, outward, inward, fig)
		})
		if err != nil {
			return Result{}, err
		}
	}

	if cfg.Show {
		if err := Show(out); err != nil {
			log.Println("Could not display", out, ":", err)
		}
	}

	return Result{
		Rows:   layout.N(),
		RMin:   layout.RMin,
		RMax:   layout.RMax,
		Output: out,
		Bounds: img.Bounds(),
	}, nil
}
