// Package export writes classified transactions for spreadsheet use.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/myasset-dev/myasset/internal/model"
)

// Header is the column row of every export.
var Header = []string{"id", "日期", "商店名稱", "品項", "金額", "類別", "fixed_category"}

const sheetName = "expenses"

// utf8BOM lets Excel detect UTF-8 in CSV files.
const utf8BOM = "\xEF\xBB\xBF"

func record(c model.Classified) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Date,
		c.Store,
		c.DisplayItem,
		strconv.FormatInt(c.Amount, 10),
		string(c.Category),
		c.FixedCategory,
	}
}

// WriteCSV writes rows as CSV, header first.
func WriteCSV(w io.Writer, rows []model.Classified) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range rows {
		if err := cw.Write(record(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []model.Classified) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{c.ID, c.Date, c.Store, c.DisplayItem, c.Amount, string(c.Category), c.FixedCategory}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Write picks the format from the file name: .xlsx for a workbook,
// anything else for CSV.
func Write(w io.Writer, name string, rows []model.Classified) error {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return WriteXLSX(w, rows)
	}
	return WriteCSV(w, rows)
}
