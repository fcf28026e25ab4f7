package categories

import "github.com/myasset-dev/myasset/internal/model"

// Set provides lookup over the category set.
type Set struct {
	categories []model.Category
	known      map[model.Category]bool
}

// NewSet creates a Set from a slice of categories.
func NewSet(categories []model.Category) *Set {
	known := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}
	return &Set{categories: categories, known: known}
}

// DefaultSet returns a Set over Default().
func DefaultSet() *Set {
	return NewSet(Default())
}

// All returns all categories in display order.
func (s *Set) All() []model.Category {
	return s.categories
}

// Exists reports whether c is a known category.
func (s *Set) Exists(c model.Category) bool {
	return s.known[c]
}
