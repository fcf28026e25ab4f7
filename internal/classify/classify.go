// Package classify derives a category and display item for a transaction.
//
// Precedence, first match wins:
//  1. the transaction's pinned category
//  2. the first user rule whose keyword occurs in the store or item
//  3. the built-in merchant table, matched against the store
//  4. CategoryOther
package classify

import (
	"strings"

	"github.com/myasset-dev/myasset/internal/model"
	"github.com/myasset-dev/myasset/internal/rules"
)

// Classify returns t with its derived category and display item.
func Classify(t model.Transaction, rs *rules.Set) model.Classified {
	out := model.Classified{Transaction: t, Category: model.CategoryOther, DisplayItem: t.Item}

	if t.Pinned() {
		out.Category = model.Category(t.FixedCategory)
		return out
	}

	for _, r := range rs.Rules() {
		if !strings.Contains(t.Store, r.Keyword) && !strings.Contains(t.Item, r.Keyword) {
			continue
		}
		out.Category = r.Category
		if r.Item != "" && model.IsPlaceholderItem(t.Item) {
			out.DisplayItem = r.Item
		}
		return out
	}

	if c, ok := matchMerchant(t.Store); ok {
		out.Category = c
	}
	return out
}

// ClassifyAll classifies every transaction against the same rule set.
func ClassifyAll(txns []model.Transaction, rs *rules.Set) []model.Classified {
	out := make([]model.Classified, len(txns))
	for i, t := range txns {
		out[i] = Classify(t, rs)
	}
	return out
}
