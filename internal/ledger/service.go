// Package ledger is the application service over the transaction store,
// the rule file and the category set.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/myasset-dev/myasset/internal/classify"
	"github.com/myasset-dev/myasset/internal/importer"
	"github.com/myasset-dev/myasset/internal/model"
	"github.com/myasset-dev/myasset/internal/rules"
	"github.com/myasset-dev/myasset/internal/storage"
)

// Service provides business logic for the expense ledger.
type Service struct {
	store     storage.Store
	rulesPath string
	cats      CategoryChecker
	parsers   *importer.Registry
	log       *slog.Logger
}

// NewService creates a ledger Service. Rules are read from rulesPath on
// every call that needs them.
func NewService(store storage.Store, rulesPath string, cats CategoryChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		rulesPath: rulesPath,
		cats:      cats,
		parsers:   importer.DefaultRegistry(),
		log:       logger,
	}
}

// ImportResult reports what an import stored.
type ImportResult struct {
	Format string
	IDs    []int64
}

// ParseFile reads and parses path without storing anything. An empty
// format means detect it from the columns.
func (s *Service) ParseFile(path, format string) ([]model.Transaction, string, error) {
	t, err := importer.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return s.parsers.Parse(t, format)
}

// ImportTable parses t and appends every transaction, or none on error.
func (s *Service) ImportTable(ctx context.Context, t *importer.Table, format string) (ImportResult, error) {
	txns, used, err := s.parsers.Parse(t, format)
	if err != nil {
		return ImportResult{Format: used}, err
	}
	ids, err := s.store.Append(ctx, txns)
	if err != nil {
		return ImportResult{Format: used}, fmt.Errorf("storing %s import: %w", used, err)
	}
	s.log.Info("imported transactions", "format", used, "count", len(ids))
	return ImportResult{Format: used, IDs: ids}, nil
}

// ImportFile reads path and imports it as one unit.
func (s *Service) ImportFile(ctx context.Context, path, format string) (ImportResult, error) {
	t, err := importer.ReadFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	res, err := s.ImportTable(ctx, t, format)
	if err != nil {
		return res, fmt.Errorf("importing %s: %w", path, err)
	}
	return res, nil
}

// Get returns transaction id classified against the current rule file.
func (s *Service) Get(ctx context.Context, id int64) (model.Classified, error) {
	rs, err := s.Rules()
	if err != nil {
		return model.Classified{}, err
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Classified{}, err
	}
	return classify.Classify(t, rs), nil
}

// AddParams holds a manually entered expense.
type AddParams struct {
	Date     time.Time
	Store    string
	Item     string
	Amount   int64
	Category model.Category // optional pin
}

// Add stores one manually entered expense and returns its id.
func (s *Service) Add(ctx context.Context, p AddParams) (int64, error) {
	v := &validator{op: "add"}
	v.item("item", p.Item)
	v.amount("amount", p.Amount)
	if p.Category != "" {
		v.category("category", p.Category, s.cats)
	}
	if err := v.err(); err != nil {
		return 0, err
	}

	store := strings.TrimSpace(p.Store)
	if store == "" {
		store = model.UnknownStore
	}
	ids, err := s.store.Append(ctx, []model.Transaction{{
		Date:          p.Date.Format(model.DateFormat),
		Store:         store,
		Item:          strings.TrimSpace(p.Item),
		Amount:        p.Amount,
		FixedCategory: string(p.Category),
	}})
	if err != nil {
		return 0, err
	}
	s.log.Info("added transaction", "id", ids[0])
	return ids[0], nil
}

// EditParams holds the editable fields of a transaction.
type EditParams struct {
	Item     string
	Amount   int64
	Category model.Category
}

// Edit overwrites item and amount of id and pins it to Category.
func (s *Service) Edit(ctx context.Context, id int64, p EditParams) error {
	v := &validator{op: fmt.Sprintf("edit %d", id)}
	v.item("item", p.Item)
	v.amount("amount", p.Amount)
	if !s.cats.Exists(p.Category) {
		// A category pinned by a source export may lie outside the closed
		// set; keeping it unchanged is allowed.
		cur, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if string(p.Category) != cur.FixedCategory {
			v.category("category", p.Category, s.cats)
		}
	}
	if err := v.err(); err != nil {
		return err
	}
	if err := s.store.Update(ctx, id, strings.TrimSpace(p.Item), p.Amount, string(p.Category)); err != nil {
		return err
	}
	s.log.Info("edited transaction", "id", id, "category", p.Category)
	return nil
}

// Delete removes each id. It stops at the first unknown id.
func (s *Service) Delete(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			return err
		}
		s.log.Info("deleted transaction", "id", id)
	}
	return nil
}

// Clear removes every transaction and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn("cleared all transactions", "count", n)
	return n, nil
}

// Split replaces transaction id with pieces. Pieces with a zero amount
// are dropped first; the rest must add up to the original amount.
func (s *Service) Split(ctx context.Context, id int64, pieces []Piece) ([]int64, error) {
	original, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var kept []Piece
	for _, p := range pieces {
		if p.Amount != 0 {
			kept = append(kept, p)
		}
	}
	if err := validateSplit(original, kept, s.cats); err != nil {
		return nil, err
	}

	txns := make([]model.Transaction, len(kept))
	for i, p := range kept {
		txns[i] = model.Transaction{
			Date:          original.Date,
			Store:         original.Store,
			Item:          strings.TrimSpace(p.Item),
			Amount:        p.Amount,
			FixedCategory: string(p.Category),
		}
	}
	ids, err := s.store.Split(ctx, id, txns)
	if err != nil {
		return nil, err
	}
	s.log.Info("split transaction", "id", id, "pieces", len(ids))
	return ids, nil
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Month    string // YYYY-MM
	Search   string // substring of store, item or amount, case-insensitive
	Category model.Category
}

func (f Filter) match(c model.Classified) bool {
	if f.Month != "" && c.Month() != f.Month {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	for _, field := range []string{c.Store, c.Item, c.DisplayItem, strconv.FormatInt(c.Amount, 10)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// List classifies every stored transaction against the current rule file
// and returns those matching f, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]model.Classified, error) {
	rs, err := s.Rules()
	if err != nil {
		return nil, err
	}
	txns, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.Classified
	for _, c := range classify.ClassifyAll(txns, rs) {
		if f.match(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Months returns every month with at least one transaction, newest first.
func (s *Service) Months(ctx context.Context) ([]string, error) {
	txns, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var months []string
	for _, t := range txns {
		m := t.Month()
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// Suggestions proposes rule keywords for unclassified spending in month,
// or in every month when month is empty.
func (s *Service) Suggestions(ctx context.Context, month string) ([]rules.Suggestion, error) {
	list, err := s.List(ctx, Filter{Month: month, Category: model.CategoryOther})
	if err != nil {
		return nil, err
	}
	return rules.Suggest(list), nil
}

// Rules loads the rule file.
func (s *Service) Rules() (*rules.Set, error) {
	rs, err := rules.Load(s.rulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return rs, nil
}

// SetRule adds or replaces a rule and rewrites the rule file.
func (s *Service) SetRule(r model.Rule) error {
	r.Keyword = strings.TrimSpace(r.Keyword)
	r.Item = strings.TrimSpace(r.Item)

	v := &validator{op: "set rule"}
	if r.Keyword == "" {
		v.add("keyword", "keyword is empty")
	}
	v.category("category", r.Category, s.cats)
	if err := v.err(); err != nil {
		return err
	}

	rs, err := s.Rules()
	if err != nil {
		return err
	}
	rs.Put(r)
	if err := rules.Save(s.rulesPath, rs); err != nil {
		return err
	}
	s.log.Info("saved rule", "keyword", r.Keyword, "category", r.Category)
	return nil
}

// DeleteRule removes the rule for keyword. It reports whether one existed.
func (s *Service) DeleteRule(keyword string) (bool, error) {
	rs, err := s.Rules()
	if err != nil {
		return false, err
	}
	if !rs.Delete(keyword) {
		return false, nil
	}
	if err := rules.Save(s.rulesPath, rs); err != nil {
		return false, err
	}
	s.log.Info("deleted rule", "keyword", keyword)
	return true, nil
}
