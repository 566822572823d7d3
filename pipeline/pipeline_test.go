package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/polarbars/table"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func writeBook(t *testing.T, dir string, header []string, rows [][]float64) string {
	t.Helper()

	path := filepath.Join(dir, "Book1.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	return path
}

// testConfig renders a small figure so tests stay fast.
func testConfig(input, output string) Config {
	cfg := DefaultConfig()
	cfg.Input = input
	cfg.Output = output
	cfg.SizeInches = 4
	cfg.DPI = 50
	return cfg
}

func TestRunFourRows(t *testing.T) {
	dir := t.TempDir()
	input := writeBook(t, dir, []string{"Reads top", "Reads bottom"}, [][]float64{
		{1, 4},
		{2, 3},
		{3, 2},
		{4, 1},
	})

	cfg := testConfig(input, filepath.Join(dir, "S1Meghanew"))
	cfg.GeometryOutput = filepath.Join(dir, "geometry.csv")
	cfg.PreviewOutput = filepath.Join(dir, "preview.png")

	var stdout bytes.Buffer
	res, err := Run(context.Background(), cfg, nil, &stdout)
	if err != nil {
		t.Fatal(err)
	}

	if res.Rows != 4 || res.RMin != -8 || res.RMax != 8 {
		t.Errorf("Unexpected result %+v", res)
	}
	if want := filepath.Join(dir, "S1Meghanew.png"); res.Output != want {
		t.Errorf("Output %s, want %s", res.Output, want)
	}

	f, err := os.Open(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dx() >= 200 {
		t.Errorf("Expected a tight crop inside the 200px figure, got %v", img.Bounds())
	}

	if !strings.Contains(stdout.String(), "Reads top\tReads bottom") {
		t.Errorf("Table printout missing headers:\n%s", stdout.String())
	}

	for _, path := range []string{cfg.GeometryOutput, cfg.PreviewOutput} {
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s was not written (%v)", path, err)
		}
	}
}

func TestRunMissingColumnWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeBook(t, dir, []string{"Reads top", "Reads middle"}, [][]float64{{1, 4}})

	cfg := testConfig(input, filepath.Join(dir, "S1Meghanew"))
	cfg.GeometryOutput = filepath.Join(dir, "geometry.csv")

	_, err := Run(context.Background(), cfg, nil, nil)
	if !errors.Is(err, table.ErrColumnNotFound) {
		t.Fatalf("Expected ErrColumnNotFound, got %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "S1Meghanew.png"), cfg.GeometryOutput} {
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s should not exist (%v)", path, err)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(filepath.Join(dir, "Book1.xlsx"), filepath.Join(dir, "out"))

	if _, err := Run(context.Background(), cfg, nil, nil); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestRunSingleRowCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reads.csv")
	if err := os.WriteFile(input, []byte("Reads top,Reads bottom\n3,2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(input, filepath.Join(dir, "ring.png"))
	cfg.PrintTable = false

	res, err := Run(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.Rows != 1 || res.RMax != 6 {
		t.Errorf("Unexpected result %+v", res)
	}

	// One bar wider than a full turn is a ring, so the crop is square
	if d := res.Bounds.Dx() - res.Bounds.Dy(); d < -1 || d > 1 {
		t.Errorf("Expected a square ring, got %v", res.Bounds)
	}
}

func TestRunUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeBook(t, dir, []string{"Reads top", "Reads bottom"}, [][]float64{{1, 1}})

	cfg := testConfig(input, filepath.Join(dir, "missing-dir", "out.png"))
	cfg.PrintTable = false

	if _, err := Run(context.Background(), cfg, nil, nil); err == nil {
		t.Error("Expected an error writing into a missing directory")
	}
}

// PNG refuses to encode an empty image, so Save fails after the output path
// has been chosen.
func TestSaveFailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "S1Meghanew.png")

	if err := os.WriteFile(path, []byte("previous chart"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Save(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)), path, nil); err == nil {
		t.Fatal("Expected an encode error")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "previous chart" {
		t.Errorf("Previous output was overwritten with %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected no leftover files, found %d entries", len(entries))
	}
}

func TestRunRejectsBadConfigBeforeLoading(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]func(*Config){
		"color":     func(c *Config) { c.OutwardColor = "not-a-color" },
		"backend":   func(c *Config) { c.Backend = "svg" },
		"dpi":       func(c *Config) { c.DPI = 0 },
		"format":    func(c *Config) { c.Format = "ods" },
		"delimiter": func(c *Config) { c.Delimiter = ";;" },
		"output":    func(c *Config) { c.Output = filepath.Join(dir, "chart.svg") },
		"zerowidth": func(c *Config) { c.WidthMultiplier = 0 },
		"negwidth":  func(c *Config) { c.WidthMultiplier = -2 },
	}

	for name, mutate := range cases {
		// The input does not exist, so a not-exist error means the config
		// was not checked first.
		cfg := testConfig(filepath.Join(dir, "Book1.xlsx"), filepath.Join(dir, "out"))
		mutate(&cfg)

		_, err := Run(context.Background(), cfg, nil, nil)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s: expected a config error, got %v", name, err)
		}
	}
}

func TestExtract(t *testing.T) {
	tab := table.New("mem", []string{"Reads top", "Reads bottom", "Other"}, [][]string{
		{"1", "4", "x"},
		{"", "3", "y"},
	})

	outward, inward, err := Extract(tab, "Reads top", "Reads bottom")
	if err != nil {
		t.Fatal(err)
	}

	if len(outward) != 2 || outward[0] != 1 || !math.IsNaN(outward[1]) {
		t.Errorf("Unexpected outward %v", outward)
	}
	if diff := cmp.Diff([]float64{4, 3}, inward); diff != "" {
		t.Errorf("Inward mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := Extract(tab, "Reads top", "Reads bottom2"); !errors.Is(err, table.ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"S1Meghanew":        "S1Meghanew.png",
		"chart.jpg":         "chart.jpg",
		"gs://bucket/chart": "gs://bucket/chart.png",
	}
	for in, want := range cases {
		if got := OutputPath(in); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseJSONConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polar.json")
	body := `{"input": "reads.tsv", "dpi": 300, "inward_color": "#336699", "tight": false}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseJSONConfigFromPath(path, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.ConfigPath = path
	want.Input = "reads.tsv"
	want.DPI = 300
	want.InwardColor = "#336699"
	want.Tight = false

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polar.json")
	if err := os.WriteFile(path, []byte(`{"dpi_typo": 300}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJSONConfigFromPath(path, DefaultConfig()); err == nil {
		t.Error("Expected an error for an unknown field")
	}
}

func TestTableOptionsDelimiter(t *testing.T) {
	cfg := DefaultConfig()

	for in, want := range map[string]rune{"": 0, "tab": '\t', `\t`: '\t', ";": ';'} {
		cfg.Delimiter = in
		opts, err := cfg.TableOptions()
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if opts.Delimiter != want {
			t.Errorf("%q: got %q, want %q", in, opts.Delimiter, want)
		}
	}
}
