package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if idx := f.GetSheetIndex(sheet); idx < 0 {
		return nil, nil, fmt.Errorf("workbook has no sheet named %q (have %v)", sheet, sheets)
	}

	// Raw values, so that number formats such as thousands separators or
	// percentages do not leak into the parsed numbers.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	return rows[0], rows[1:], nil
}
