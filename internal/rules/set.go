// Package rules holds the user's keyword classification rules.
package rules

import "github.com/myasset-dev/myasset/internal/model"

// Set is an ordered keyword → rule mapping. Order is match precedence.
type Set struct {
	order []string
	byKey map[string]model.Rule
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{byKey: make(map[string]model.Rule)}
}

// Put stores r under its keyword. An existing keyword keeps its position.
func (s *Set) Put(r model.Rule) {
	if _, ok := s.byKey[r.Keyword]; !ok {
		s.order = append(s.order, r.Keyword)
	}
	s.byKey[r.Keyword] = r
}

// Delete removes the rule for keyword and reports whether it existed.
func (s *Set) Delete(keyword string) bool {
	if _, ok := s.byKey[keyword]; !ok {
		return false
	}
	delete(s.byKey, keyword)
	for i, k := range s.order {
		if k == keyword {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the rule for keyword.
func (s *Set) Get(keyword string) (model.Rule, bool) {
	if s == nil {
		return model.Rule{}, false
	}
	r, ok := s.byKey[keyword]
	return r, ok
}

// Rules returns all rules in precedence order. A nil Set has no rules.
func (s *Set) Rules() []model.Rule {
	if s == nil {
		return nil
	}
	out := make([]model.Rule, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
