package table

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when a requested column is absent from the
// header row.
var ErrColumnNotFound = errors.New("column not found")

// ParseError describes input that could not be read as a table, or a cell that
// could not be read as a number. Row and Col are 1-based spreadsheet
// coordinates, the header being row 1. Either may be zero when the problem is
// not tied to a cell.
type ParseError struct {
	Path  string
	Row   int
	Col   int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Row > 0 && e.Col > 0:
		return fmt.Sprintf("%s: row %d column %d (%q): %v", e.Path, e.Row, e.Col, e.Value, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
