package read

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.Nil(t, book.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := book.NewSheet(name)
			require.Nil(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.Nil(t, err)
			require.Nil(t, book.SetSheetRow(name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.Nil(t, book.Write(&buf))
	return &buf
}

func TestXLSXReadsFirstSheet(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"data": {
			{"id", "name"},
			{"1", "alice"},
			{"2", "bob"},
		},
	})

	df, err := XLSX(buf, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name"}, df.Names())
	require.Equal(t, 2, df.Nrow())
	require.Equal(t, []string{"alice", "bob"}, df.Col("name").Records())
}

func TestXLSXNamedSheet(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"extra": {{"x"}, {"1"}},
	})

	df, err := XLSX(buf, &Conf{Sheet: "extra"})
	require.Nil(t, err)
	require.Equal(t, []string{"x"}, df.Names())

	buf = workbook(t, map[string][][]any{
		"extra": {{"x"}, {"1"}},
	})
	_, err = XLSX(buf, &Conf{Sheet: "missing"})
	require.NotNil(t, err)
}

func TestXLSXPadsRaggedRows(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"data": {
			{"id", "name", "age"},
			{"1", "alice"},
		},
	})

	df, err := XLSX(buf, nil)
	require.Nil(t, err)
	require.Equal(t, 3, len(df.Names()))
	require.Equal(t, 1, df.Nrow())
}

func TestXLSXRejectsGarbage(t *testing.T) {
	_, err := XLSX(bytes.NewReader([]byte("not a workbook")), nil)
	require.NotNil(t, err)
}
