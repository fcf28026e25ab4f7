package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Table is a raw imported sheet: a header row plus data rows. An empty
// cell means "no value".
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether every named column is present.
func (t *Table) Has(names ...string) bool {
	for _, n := range names {
		if t.Index(n) < 0 {
			return false
		}
	}
	return true
}

// cell returns row[col], or "" when col is absent.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads a .csv or .xlsx file into a Table.
func ReadFile(path string) (*Table, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(bytes.NewReader(data))
	case ".xlsx":
		return ReadXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV reads a CSV table. Input that is not valid UTF-8 is decoded as Big5.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		data, err = traditionalchinese.Big5.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding CSV as Big5: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return newTable(records)
}

// ReadXLSX reads the first sheet of a workbook; its first row is the header.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return newTable(rows)
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return &Table{}, nil
	}

	t := &Table{Columns: records[0]}
	for i, rec := range records[1:] {
		if len(rec) > len(t.Columns) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(t.Columns), len(rec))
		}
		row := make([]string, len(t.Columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
