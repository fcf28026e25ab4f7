package rules

import (
	"sort"

	"github.com/myasset-dev/myasset/internal/model"
)

// SuggestionKind says which transaction field a suggested keyword came from.
type SuggestionKind string

const (
	SuggestStore SuggestionKind = "store"
	SuggestItem  SuggestionKind = "item"
)

// Suggestion proposes a keyword for a new rule.
type Suggestion struct {
	Keyword string
	Kind    SuggestionKind
	Total   int64
	Count   int
}

// Suggest proposes rule keywords from transactions that fell through to
// the "other" category: known store names first, then real item names not
// already proposed as a store.
func Suggest(classified []model.Classified) []Suggestion {
	stores := make(map[string]*Suggestion)
	items := make(map[string]*Suggestion)

	for _, c := range classified {
		if c.Category != model.CategoryOther {
			continue
		}
		if c.Store != model.UnknownStore {
			tally(stores, c.Store, SuggestStore, c.Amount)
		}
		if !model.IsPlaceholderItem(c.Item) {
			tally(items, c.Item, SuggestItem, c.Amount)
		}
	}

	out := sorted(stores)
	for _, s := range sorted(items) {
		if _, dup := stores[s.Keyword]; dup {
			continue
		}
		out = append(out, s)
	}
	return out
}

func tally(m map[string]*Suggestion, keyword string, kind SuggestionKind, amount int64) {
	s, ok := m[keyword]
	if !ok {
		s = &Suggestion{Keyword: keyword, Kind: kind}
		m[keyword] = s
	}
	s.Total += amount
	s.Count++
}

func sorted(m map[string]*Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(m))
	for _, s := range m {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out
}
