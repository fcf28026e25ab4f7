package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/myasset-dev/myasset/internal/model"
)

// MessyParser reads e-invoice statements pasted into a sheet, where each
// purchase is smeared over free-text rows: a line with the date and the
// amount, then a line with the store name.
type MessyParser struct{}

const (
	// noiseMarker tags printer lines ("barcode changed") that are never store names.
	noiseMarker    = "變條碼"
	maxMessyAmount = 1_000_000
)

var anchorPattern = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)

// Format returns the parser name.
func (p *MessyParser) Format() string { return string(ShapeMessyPaste) }

// Parse flattens each row to one line and scans the lines in order.
// Malformed input yields fewer transactions, never an error.
func (p *MessyParser) Parse(t *Table) ([]model.Transaction, error) {
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		lines = append(lines, flatten(row))
	}
	return scanMessyLines(lines), nil
}

func flatten(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

type messyState int

const (
	awaitingAnchor messyState = iota
	awaitingStore
)

// messyScanner is a two-state machine. An anchor line (date + amount)
// moves it to awaitingStore; the next store line emits a transaction and
// resets it. pendingAmount survives a re-anchor that carries no amount.
type messyScanner struct {
	state         messyState
	pendingDate   string
	pendingAmount int64 // 0 = none
	out           []model.Transaction
}

func scanMessyLines(lines []string) []model.Transaction {
	var s messyScanner
	for _, line := range lines {
		s.feed(line)
	}
	return s.out
}

func (s *messyScanner) feed(line string) {
	if m := anchorPattern.FindStringSubmatch(line); m != nil {
		s.anchor(line, m)
		return
	}
	if s.state != awaitingStore {
		return
	}

	store := strings.TrimSpace(line)
	if store == "" || strings.Contains(store, noiseMarker) {
		return
	}
	s.out = append(s.out, model.Transaction{
		Date:   s.pendingDate,
		Store:  store,
		Item:   model.GenericItem,
		Amount: s.pendingAmount,
	})
	*s = messyScanner{out: s.out}
}

func (s *messyScanner) anchor(line string, m []string) {
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	s.pendingDate = fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
	if _, err := time.Parse(model.DateFormat, s.pendingDate); err != nil {
		s.pendingDate = ""
	}

	for _, n := range integerTokens(line) {
		if n != int64(year) && n != int64(month) && n != int64(day) && n < maxMessyAmount {
			s.pendingAmount = n
		}
	}

	if s.pendingDate != "" && s.pendingAmount > 0 {
		s.state = awaitingStore
	} else {
		s.state = awaitingAnchor
	}
}

// integerTokens returns every run of ASCII digits that stands alone as a
// word: the runes on either side are not letters, numbers or underscore in
// any script. "120" in "120元" is not a token.
func integerTokens(line string) []int64 {
	runes := []rune(line)
	var out []int64
	for i := 0; i < len(runes); {
		if !isASCIIDigit(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && isASCIIDigit(runes[j]) {
			j++
		}
		standalone := (i == 0 || !isWordRune(runes[i-1])) && (j == len(runes) || !isWordRune(runes[j]))
		if standalone {
			if n, err := strconv.ParseInt(string(runes[i:j]), 10, 64); err == nil {
				out = append(out, n)
			}
		}
		i = j
	}
	return out
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
