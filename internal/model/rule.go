package model

// Rule maps a keyword to a category. Item, when set, replaces a
// placeholder item on matching transactions.
type Rule struct {
	Keyword  string
	Category Category
	Item     string // empty = no default item
}
