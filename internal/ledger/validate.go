package ledger

import (
	"fmt"
	"strings"

	"github.com/myasset-dev/myasset/internal/model"
)

// Problem describes a single reason a requested change was refused.
type Problem struct {
	Field       string
	Description string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Description)
}

// ValidationError lists every problem found with a change. Nothing is
// written when it is returned.
type ValidationError struct {
	Op       string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Op, strings.Join(msgs, "; "))
}

// CategoryChecker tests whether a category belongs to the closed set.
type CategoryChecker interface {
	Exists(c model.Category) bool
}

type validator struct {
	op       string
	problems []Problem
}

func (v *validator) add(field, format string, args ...any) {
	v.problems = append(v.problems, Problem{Field: field, Description: fmt.Sprintf(format, args...)})
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Op: v.op, Problems: v.problems}
}

func (v *validator) category(field string, c model.Category, cats CategoryChecker) {
	if !cats.Exists(c) {
		v.add(field, "unknown category %q", c)
	}
}

func (v *validator) amount(field string, amount int64) {
	if amount < 0 {
		v.add(field, "amount %d is negative", amount)
	}
}

func (v *validator) item(field, item string) {
	if strings.TrimSpace(item) == "" {
		v.add(field, "item is empty")
	}
}

// Piece is one part of a split transaction.
type Piece struct {
	Item     string
	Amount   int64
	Category model.Category
}

// validateSplit checks pieces against the original amount. Zero-amount
// pieces must already be dropped.
func validateSplit(original model.Transaction, pieces []Piece, cats CategoryChecker) error {
	v := &validator{op: fmt.Sprintf("split %d", original.ID)}
	if len(pieces) == 0 {
		v.add("pieces", "at least one piece with a non-zero amount is required")
		return v.err()
	}

	var sum int64
	exceeded := false
	for i, p := range pieces {
		field := fmt.Sprintf("piece %d", i+1)
		v.item(field, p.Item)
		v.amount(field, p.Amount)
		v.category(field, p.Category, cats)
		if p.Amount < 0 {
			continue
		}
		// sum never exceeds original.Amount, so the subtraction cannot overflow.
		if p.Amount > original.Amount-sum {
			exceeded = true
			continue
		}
		sum += p.Amount
	}
	switch {
	case exceeded:
		v.add("pieces", "amounts exceed the original amount %d", original.Amount)
	case sum != original.Amount:
		v.add("pieces", "amounts sum to %d, want %d", sum, original.Amount)
	}
	return v.err()
}
