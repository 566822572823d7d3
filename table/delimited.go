package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/carbocation/polarbars"
)

// Bytes sampled for delimiter detection
const sniffSize = 64 * 1024

// readDelimited also returns the line each row starts on, since the csv
// reader skips empty lines and quoted fields may span several.
func readDelimited(r io.Reader, delimiter rune) (header []string, rows [][]string, lines []int, err error) {
	dr, _, err := polarbars.MaybeDecompressReader(r)
	if err != nil {
		return nil, nil, nil, err
	}

	data, err := io.ReadAll(dr)
	if err != nil {
		return nil, nil, nil, err
	}

	// Excel writes a byte order mark at the start of its CSV exports
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if delimiter == 0 {
		sample := data
		if len(sample) > sniffSize {
			sample = sample[:sniffSize]
		}
		delimiter = polarbars.DetermineDelimiterFromSample(sample)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err = cr.Read()
	if err == io.EOF {
		return nil, nil, nil, errors.New("file is empty")
	} else if err != nil {
		return nil, nil, nil, csvParseError(err)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, nil, csvParseError(err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}

	return header, rows, lines, nil
}

func csvParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Row: pe.Line, Col: pe.Column, Err: pe.Err}
	}

	return err
}
