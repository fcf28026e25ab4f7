package model

const (
	// UnknownStore marks a transaction with no merchant identity.
	UnknownStore = "-"
	// GenericItem marks a transaction with no specific item recorded.
	GenericItem = "一般消費"
	// DateFormat is the stored date layout.
	DateFormat = "2006-01-02"
)

// Transaction is one persisted expense record.
type Transaction struct {
	ID            int64  // assigned by the store on insert
	Date          string // YYYY-MM-DD
	Store         string // UnknownStore when not known
	Item          string // GenericItem when not known
	Amount        int64  // whole currency units, never negative
	FixedCategory string // empty = not pinned
}

// Pinned reports whether the transaction carries a category override.
func (t Transaction) Pinned() bool {
	return t.FixedCategory != ""
}

// Month returns the YYYY-MM prefix of the transaction date.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// Classified is a transaction together with its derived category and the
// item to display. It is recomputed on every read and never stored.
type Classified struct {
	Transaction
	Category    Category
	DisplayItem string
}

// IsPlaceholderItem reports whether item means "nothing specific recorded".
func IsPlaceholderItem(item string) bool {
	switch item {
	case GenericItem, UnknownStore, "nan", "":
		return true
	}
	return false
}
