package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/carbocation/polarbars/polar"
	"github.com/disintegration/imaging"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// smallFigure is 200x200 pixels with a polar disc of radius 77.
func smallFigure() Figure {
	f := DefaultFigure()
	f.SizeInches = 4
	f.DPI = 50
	f.Tight = false
	return f
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func pixelAtRadius(t *testing.T, img image.Image, f Figure, layout polar.Layout, theta, r float64) color.NRGBA {
	t.Helper()

	d := newDisc(float64(f.SidePixels()), f, layout)
	p := d.at(theta, d.distance(r))

	return nrgbaAt(img, int(math.Round(p.X)), int(math.Round(p.Y)))
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"red":       red,
		"Black":     black,
		"k":         black,
		"#ff0000":   red,
		"#FFFFFF":   white,
		"#00000080": {A: 0x80},
	}

	for code, want := range cases {
		c, err := ParseColor(code)
		if err != nil {
			t.Errorf("%s: %v", code, err)
			continue
		}
		if got := color.NRGBAModel.Convert(c).(color.NRGBA); got != want {
			t.Errorf("%s: got %v, want %v", code, got, want)
		}
	}

	if c, err := ParseColor("none"); err != nil || c != color.Transparent {
		t.Errorf("Expected transparent, got %v (%v)", c, err)
	}

	for _, bad := range []string{"", "#12", "#gg0000", "reddish"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestNewBackend(t *testing.T) {
	for name, want := range map[string]string{"": "gg", "gg": "gg", "canvas": "canvas"} {
		b, err := NewBackend(name)
		if err != nil {
			t.Fatal(err)
		}
		if b.Name() != want {
			t.Errorf("%q: got backend %s, want %s", name, b.Name(), want)
		}
	}

	if _, err := NewBackend("cairo"); err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}

func TestFigureValidate(t *testing.T) {
	if err := DefaultFigure().Validate(); err != nil {
		t.Errorf("Default figure invalid: %v", err)
	}

	f := DefaultFigure()
	f.DPI = 0
	if err := f.Validate(); err == nil {
		t.Error("Expected an error for zero DPI")
	}

	f = DefaultFigure()
	f.AxesFraction = 1.5
	if err := f.Validate(); err == nil {
		t.Error("Expected an error for an oversized axes fraction")
	}

	if px := DefaultFigure().SidePixels(); px != 9600 {
		t.Errorf("Default figure is %d pixels, want 9600", px)
	}
}

// With the default multiplier every one of four bars spans a full turn, so
// the last bar painted in each series sets that series' ring.
func TestRingsBothBackends(t *testing.T) {
	layout, err := polar.NewLayout([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}, polar.DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}

	f := smallFigure()

	for _, b := range []Backend{GGBackend{}, CanvasBackend{}} {
		img, err := b.Draw(f, layout)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}

		if got := img.Bounds().Dx(); got != 200 {
			t.Errorf("%s: width %d, want 200", b.Name(), got)
		}

		for _, theta := range []float64{0, math.Pi / 3, math.Pi, 4} {
			if got := pixelAtRadius(t, img, f, layout, theta, -6); got != white {
				t.Errorf("%s theta=%g: center %v, want white", b.Name(), theta, got)
			}
			if got := pixelAtRadius(t, img, f, layout, theta, -2); got != black {
				t.Errorf("%s theta=%g: inward ring %v, want black", b.Name(), theta, got)
			}
			if got := pixelAtRadius(t, img, f, layout, theta, 2); got != red {
				t.Errorf("%s theta=%g: outward ring %v, want red", b.Name(), theta, got)
			}
			if got := pixelAtRadius(t, img, f, layout, theta, 6); got != white {
				t.Errorf("%s theta=%g: outside %v, want white", b.Name(), theta, got)
			}
		}
	}
}

// A single bar per series, one slot wide, shows where index 0 lands and
// which way the rest run.
func TestFirstBarAtTopThenClockwise(t *testing.T) {
	f := smallFigure()
	opts := polar.LayoutOptions{WidthMultiplier: 1}

	first, err := polar.NewLayout([]float64{4, 0, 0, 0}, []float64{0, 0, 0, 0}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := polar.NewLayout([]float64{0, 4, 0, 0}, []float64{0, 0, 0, 0}, opts)
	if err != nil {
		t.Fatal(err)
	}

	for _, b := range []Backend{GGBackend{}, CanvasBackend{}} {
		img, err := b.Draw(f, first)
		if err != nil {
			t.Fatal(err)
		}
		if got := pixelAtRadius(t, img, f, first, math.Pi/2, 2); got != red {
			t.Errorf("%s: top got %v, want red", b.Name(), got)
		}
		if got := pixelAtRadius(t, img, f, first, -math.Pi/2, 2); got != white {
			t.Errorf("%s: bottom got %v, want white", b.Name(), got)
		}
		if got := pixelAtRadius(t, img, f, first, 0, 2); got != white {
			t.Errorf("%s: right got %v, want white", b.Name(), got)
		}

		img, err = b.Draw(f, second)
		if err != nil {
			t.Fatal(err)
		}
		if got := pixelAtRadius(t, img, f, second, 0, 2); got != red {
			t.Errorf("%s: second bar should sit at 3 o'clock, got %v", b.Name(), got)
		}
		if got := pixelAtRadius(t, img, f, second, math.Pi, 2); got != white {
			t.Errorf("%s: left got %v, want white", b.Name(), got)
		}
	}
}

func TestSectorSkipsEmptyBars(t *testing.T) {
	layout := polar.Layout{RMin: -8, RMax: 8}
	d := newDisc(200, smallFigure(), layout)

	if pts := d.sector(polar.Bar{Height: math.NaN(), Width: 1}); pts != nil {
		t.Error("Expected NaN bar to be skipped")
	}
	if pts := d.sector(polar.Bar{Height: 0, Width: 1}); pts != nil {
		t.Error("Expected zero-height bar to be skipped")
	}
	if pts := d.sector(polar.Bar{Bottom: 9, Height: 3, Width: 1}); pts != nil {
		t.Error("Expected bar outside the limits to be skipped")
	}
	if pts := d.sector(polar.Bar{Height: 3, Width: 20 * math.Pi}); len(pts) != 2*361 {
		t.Errorf("Expected a full ring of 361 points per arc, got %d points", len(pts))
	}
}

func TestRenderTightCrop(t *testing.T) {
	layout, err := polar.NewLayout([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}, polar.DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}

	f := smallFigure()
	f.Tight = true

	img, err := Render(GGBackend{}, f, layout)
	if err != nil {
		t.Fatal(err)
	}

	// The red ring reaches 3/4 of the disc radius of 77 pixels
	want := 2 * 77 * 3 / 4.
	if dx := float64(img.Bounds().Dx()); math.Abs(dx-want) > 3 {
		t.Errorf("Cropped width %g, want about %g", dx, want)
	}
	if img.Bounds().Min != (image.Point{}) {
		t.Errorf("Cropped image not re-based: %v", img.Bounds())
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	if _, err := Render(GGBackend{}, smallFigure(), polar.Layout{}); err == nil {
		t.Error("Expected an error for an empty layout")
	}

	layout, err := polar.NewLayout([]float64{1}, []float64{1}, polar.DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	f := smallFigure()
	f.DPI = -1
	if _, err := Render(GGBackend{}, f, layout); err == nil {
		t.Error("Expected an error for a negative DPI")
	}
}

func TestTightBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	if b := TightBounds(img, color.White); b != img.Bounds() {
		t.Errorf("Blank image bounds %v, want the full image", b)
	}

	img.Set(3, 4, color.Black)
	img.Set(6, 2, color.Black)

	want := image.Rect(3, 2, 7, 5)
	if b := TightBounds(img, color.White); b != want {
		t.Errorf("Got %v, want %v", b, want)
	}

	// The generic path must agree with the fast path
	nrgba := imaging.Clone(img)
	if b := TightBounds(nrgba, color.White); b != want {
		t.Errorf("Generic path got %v, want %v", b, want)
	}

	cropped := Crop(img, want)
	if cropped.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Cropped to %v", cropped.Bounds())
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]imaging.Format{
		"S1Meghanew":     imaging.PNG,
		"chart.png":      imaging.PNG,
		"chart.JPG":      imaging.JPEG,
		"out/chart.tiff": imaging.TIFF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("%s: got %v, want %v", path, got, want)
		}
	}

	if _, err := FormatFromPath("chart.svg"); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))

	var buf bytes.Buffer
	if err := Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Decoded bounds %v", decoded.Bounds())
	}
}

func TestWritePreview(t *testing.T) {
	for _, c := range []struct{ out, in []float64 }{
		{[]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}},
		{[]float64{3}, []float64{2}},
		{[]float64{0, 0}, []float64{0, 0}},
	} {
		var buf bytes.Buffer
		if err := WritePreview(&buf, c.out, c.in, DefaultFigure()); err != nil {
			t.Fatalf("%v/%v: %v", c.out, c.in, err)
		}

		if _, err := png.Decode(&buf); err != nil {
			t.Errorf("%v/%v: preview is not a PNG: %v", c.out, c.in, err)
		}
	}
}
