package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/myasset-dev/myasset/internal/model"
)

// DailyAccountingParser parses the budgeting app's CSV export. The app
// already categorizes every record, so its category is pinned.
type DailyAccountingParser struct{}

const (
	dailyDateFormat  = "20060102"
	dailyExpenseFlag = "支"
)

// Format returns the parser name.
func (p *DailyAccountingParser) Format() string { return string(ShapeDailyAccounting) }

// Parse keeps expense rows only and never knows the store.
func (p *DailyAccountingParser) Parse(t *Table) ([]model.Transaction, error) {
	cols, err := requireColumns(t, colFlag, colDate, colNote, colCategory, colAmount)
	if err != nil {
		return nil, err
	}
	flag, date, note, category, amount := cols[0], cols[1], cols[2], cols[3], cols[4]

	var txns []model.Transaction
	for i, row := range t.Rows {
		if cell(row, flag) != dailyExpenseFlag {
			continue
		}

		raw := strings.TrimSpace(cell(row, date))
		d, err := time.Parse(dailyDateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, raw, err)
		}
		amt, err := parseAmount(cell(row, amount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		cat := cell(row, category)
		item := cell(row, note)
		if item == "" {
			item = cat
		}

		txns = append(txns, model.Transaction{
			Date:          d.Format(model.DateFormat),
			Store:         model.UnknownStore,
			Item:          item,
			Amount:        amt,
			FixedCategory: cat,
		})
	}
	return txns, nil
}

// requireColumns returns the index of each named column, in order.
func requireColumns(t *Table, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.Index(n)
		if idx[i] < 0 {
			return nil, fmt.Errorf("missing column %q", n)
		}
	}
	return idx, nil
}
