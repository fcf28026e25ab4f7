package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/myasset-dev/myasset/internal/model"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

// renderTable writes rows under headers. Columns listed in numeric are
// right-aligned.
func renderTable(w io.Writer, headers []string, rows [][]string, numeric ...int) {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if right[col] && row != table.HeaderRow {
				return amountStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// renderTransactions lists classified transactions. A pinned category is
// marked with "*".
func renderTransactions(w io.Writer, list []model.Classified) {
	rows := make([][]string, len(list))
	var total int64
	for i, c := range list {
		category := string(c.Category)
		if c.Pinned() {
			category += "*"
		}
		rows[i] = []string{
			idString(c.ID),
			c.Date,
			c.Store,
			c.DisplayItem,
			strconv.FormatInt(c.Amount, 10),
			category,
		}
		total += c.Amount
	}
	renderTable(w, []string{"ID", "DATE", "STORE", "ITEM", "AMOUNT", "CATEGORY"}, rows, 0, 4)
	fmt.Fprintf(w, "%d transactions, total %d\n", len(list), total)
}

func idString(id int64) string {
	if id == 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
