package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a whole, non-negative amount such as "150", "150.0"
// or "1,200".
func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("amount %s is not a whole number", d)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", d)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s is too large", d)
	}
	return d.IntPart(), nil
}
