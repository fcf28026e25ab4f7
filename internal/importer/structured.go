package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/myasset-dev/myasset/internal/model"
)

// StructuredParser reads any table that names its columns, e.g. the
// government e-invoice export or a hand-made spreadsheet.
type StructuredParser struct{}

var structuredDateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"20060102",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// Format returns the parser name.
func (p *StructuredParser) Format() string { return string(ShapeStructured) }

// Parse resolves column aliases, then reads one transaction per row.
func (p *StructuredParser) Parse(t *Table) ([]model.Transaction, error) {
	date := canonicalIndex(t, colDate)
	store := canonicalIndex(t, colStore)
	amount := canonicalIndex(t, colAmount)
	for _, c := range []struct {
		name string
		idx  int
	}{{colDate, date}, {colStore, store}, {colAmount, amount}} {
		if c.idx < 0 {
			return nil, fmt.Errorf("missing column %q", c.name)
		}
	}
	item := t.Index(colItem)
	fixed := t.Index(colFixed)

	txns := make([]model.Transaction, 0, len(t.Rows))
	for i, row := range t.Rows {
		d, err := parseStructuredDate(cell(row, date))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		amt, err := parseAmount(cell(row, amount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		txn := model.Transaction{
			Date:          d,
			Store:         strings.TrimSpace(cell(row, store)),
			Item:          cell(row, item),
			Amount:        amt,
			FixedCategory: strings.TrimSpace(cell(row, fixed)),
		}
		if txn.Store == "" {
			txn.Store = model.UnknownStore
		}
		if txn.Item == "" {
			txn.Item = model.GenericItem
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// canonicalIndex finds name, falling back to any alias of it.
func canonicalIndex(t *Table, name string) int {
	if i := t.Index(name); i >= 0 {
		return i
	}
	for alias, canonical := range columnAliases {
		if canonical == name {
			if i := t.Index(alias); i >= 0 {
				return i
			}
		}
	}
	return -1
}

func parseStructuredDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range structuredDateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(model.DateFormat), nil
		}
	}
	return "", fmt.Errorf("parsing date %q", s)
}
