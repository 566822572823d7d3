package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

func readXLS(r io.ReadSeeker, sheetName string) ([]string, [][]string, error) {
	spreadsheet, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, nil, err
	}
	if spreadsheet == nil {
		return nil, nil, errors.New("file has no workbook stream")
	}

	if spreadsheet.NumSheets() < 1 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	sheet := spreadsheet.GetSheet(0)
	if sheetName != "" {
		sheet = nil
		for sheetID := 0; sheetID < spreadsheet.NumSheets(); sheetID++ {
			if s := spreadsheet.GetSheet(sheetID); s != nil && s.Name == sheetName {
				sheet = s
				break
			}
		}
	}
	if sheet == nil {
		return nil, nil, fmt.Errorf("workbook has no sheet named %q", sheetName)
	}

	var header []string
	var rows [][]string

	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheetRow(sheet, rowID)
		if row == nil {
			// Gaps in the row table are blank rows
			if rowID > 0 {
				rows = append(rows, nil)
			}
			continue
		}

		// LastCol is one past the last cell in files written by Excel, so
		// read up to it inclusively and drop the trailing blanks.
		last := row.LastCol()
		if len(header)-1 > last {
			last = len(header) - 1
		}
		values := make([]string, 0, last+1)
		for colID := 0; colID <= last; colID++ {
			values = append(values, row.Col(colID))
		}
		for len(values) > 0 && values[len(values)-1] == "" {
			values = values[:len(values)-1]
		}

		if rowID == 0 {
			header = values
			continue
		}
		rows = append(rows, values)
	}

	if header == nil {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet.Name)
	}

	return header, rows, nil
}

// sheetRow returns nil for rows the sheet has no record of. WorkSheet.Row
// dereferences the row before it can be checked, so a missing one panics.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(i)
}
