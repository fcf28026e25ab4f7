package ledger

import (
	"context"
	"sort"

	"github.com/myasset-dev/myasset/internal/model"
)

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	Category model.Category
	Total    int64
	Count    int
}

// MonthTotal is the spending in one month.
type MonthTotal struct {
	Month string
	Total int64
}

// Summary aggregates the classified transactions of one month, or of
// every month when Month is empty.
type Summary struct {
	Month        string
	Total        int64
	Count        int
	Unclassified int
	ByCategory   []CategoryTotal // largest total first
	ByMonth      []MonthTotal    // oldest first
}

// Summary computes spending totals for month.
func (s *Service) Summary(ctx context.Context, month string) (Summary, error) {
	list, err := s.List(ctx, Filter{Month: month})
	if err != nil {
		return Summary{}, err
	}
	return summarize(month, list), nil
}

func summarize(month string, list []model.Classified) Summary {
	sum := Summary{Month: month, Count: len(list)}
	byCat := make(map[model.Category]*CategoryTotal)
	byMonth := make(map[string]int64)

	for _, c := range list {
		sum.Total += c.Amount
		if c.Category == model.CategoryOther {
			sum.Unclassified++
		}
		ct, ok := byCat[c.Category]
		if !ok {
			ct = &CategoryTotal{Category: c.Category}
			byCat[c.Category] = ct
		}
		ct.Total += c.Amount
		ct.Count++
		byMonth[c.Month()] += c.Amount
	}

	for _, ct := range byCat {
		sum.ByCategory = append(sum.ByCategory, *ct)
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		a, b := sum.ByCategory[i], sum.ByCategory[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})

	for m, total := range byMonth {
		sum.ByMonth = append(sum.ByMonth, MonthTotal{Month: m, Total: total})
	}
	sort.Slice(sum.ByMonth, func(i, j int) bool { return sum.ByMonth[i].Month < sum.ByMonth[j].Month })
	return sum
}
