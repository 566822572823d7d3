// Package table loads spreadsheets and delimited text into named columns.
package table

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Table is an in-memory, column-oriented view of a sheet. The header row
// supplies the column names and row order is preserved.
type Table struct {
	// Source is the path the table was read from, used in error messages.
	Source string

	headers []string
	index   map[string]int
	cells   [][]string // [column][row]
	lines   []int      // 1-based source row of each kept row
}

// New builds a Table from a header row and the data rows beneath it. Header
// names are normalized: a blank header at position i becomes "Unnamed: i" and
// repeated names get ".1", ".2", ... suffixes. Short rows are padded with blank
// cells, long rows are truncated to the header width and rows made entirely
// of blank cells are dropped.
func New(source string, header []string, rows [][]string) *Table {
	return newTable(source, header, rows, nil)
}

// newTable is New with the source row number of each data row. A nil lines
// assumes the rows sit directly under the header.
func newTable(source string, header []string, rows [][]string, lines []int) *Table {
	t := &Table{
		Source:  source,
		headers: normalizeHeaders(header),
		index:   make(map[string]int, len(header)),
	}

	for i, h := range t.headers {
		t.index[h] = i
	}

	t.cells = make([][]string, len(t.headers))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}

		line := i + 2
		if i < len(lines) {
			line = lines[i]
		}
		t.lines = append(t.lines, line)

		for col := range t.headers {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			t.cells[col] = append(t.cells[col], value)
		}
	}

	return t
}

func normalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	counts := make(map[string]int)

	// Names are kept as written, surrounding spaces included, so a column is
	// only found by its exact header text.
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}

		name := h
		for seen[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		seen[name] = true

		out[i] = name
	}

	return out
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

// Headers returns the normalized column names in sheet order.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Len is the number of data rows.
func (t *Table) Len() int {
	if len(t.cells) == 0 {
		return 0
	}

	return len(t.cells[0])
}

// Has reports whether the table has a column with this name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Strings returns the raw cell text of a column.
func (t *Table) Strings(name string) ([]string, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", t.Source, name, ErrColumnNotFound)
	}

	return append([]string(nil), t.cells[col]...), nil
}

// Column returns a column as numbers. Blank cells are null; anything else that
// does not parse as a float is a *ParseError.
func (t *Table) Column(name string) ([]null.Float, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", t.Source, name, ErrColumnNotFound)
	}

	out := make([]null.Float, len(t.cells[col]))
	for row, raw := range t.cells[col] {
		v, err := parseCell(raw)
		if err != nil {
			return nil, &ParseError{Path: t.Source, Row: t.lines[row], Col: col + 1, Value: raw, Err: err}
		}
		out[row] = v
	}

	return out, nil
}

// Float64s is Column with null cells mapped to NaN.
func (t *Table) Float64s(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(col))
	for i, v := range col {
		if !v.Valid {
			out[i] = math.NaN()
			continue
		}
		out[i] = v.Float64
	}

	return out, nil
}

var thousands = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d*)?$`)

func parseCell(raw string) (null.Float, error) {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "#n/a", "null":
		return null.NewFloat(0, false), nil
	}

	// Formatted exports may group thousands with commas. Any other comma,
	// such as a decimal comma, is left for ParseFloat to reject.
	if thousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.NewFloat(0, false), err
	}

	return null.FloatFrom(f), nil
}

// WriteTSV prints the table with a leading row index column, tab separated.
func (t *Table) WriteTSV(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\t%s\n", strings.Join(t.headers, "\t")); err != nil {
		return err
	}

	for row := 0; row < t.Len(); row++ {
		line := make([]string, 0, len(t.headers)+1)
		line = append(line, strconv.Itoa(row))
		for col := range t.headers {
			line = append(line, t.cells[col][row])
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.Join(line, "\t")); err != nil {
			return err
		}
	}

	return nil
}
