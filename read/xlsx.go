package read

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// XLSX reads one worksheet of a workbook into a string-typed frame. The
// sheet is named by conf.Sheet, or the workbook's first sheet when unset.
// Ragged rows are padded with empty cells to the widest row.
func XLSX(r io.Reader, conf *Conf) (dataframe.DataFrame, error) {
	c := withDefaults(conf)

	book, err := excelize.OpenReader(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheet := c.Sheet
	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	records := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		records[i] = padded
	}

	df := dataframe.LoadRecords(records, c.loadOptions()...)
	return df, df.Err
}
