package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/traditionalchinese"
)

func TestReadCSV_PadsShortRows(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("日期,商店名稱,金額\n2025-01-01,全聯\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"日期", "商店名稱", "金額"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"2025-01-01", "全聯", ""}, table.Rows[0])
}

func TestReadCSV_TooManyFields(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadCSV_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("日期,金額\n")...)
	table, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Index("日期"))
}

func TestReadCSV_Big5(t *testing.T) {
	src := "日期,收支區分,類別,金額,備註\n20251126,支,飲食,150,早餐\n"
	encoded, err := traditionalchinese.Big5.NewEncoder().String(src)
	require.NoError(t, err)

	table, err := ReadCSV(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.True(t, table.Has("收支區分", "備註"))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "早餐", table.Rows[0][4])
}

func TestReadCSV_Empty(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestReadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"消費日期", "店名", "總金額"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"2025-02-01", "壽司郎", 880}))
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ShapeStructured, Detect(table))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"2025-02-01", "壽司郎", "880"}, table.Rows[0])
}

func TestReadFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTableHas(t *testing.T) {
	table := &Table{Columns: []string{"a", "b"}}
	assert.True(t, table.Has("a", "b"))
	assert.False(t, table.Has("a", "c"))
	assert.Equal(t, -1, table.Index("c"))
	assert.Equal(t, "", cell([]string{"x"}, 3))
	assert.Equal(t, "", cell([]string{"x"}, -1))
}
