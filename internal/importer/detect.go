package importer

// Shape identifies which known export layout a table has. Its value is
// the name of the parser that handles it.
type Shape string

const (
	// ShapeDailyAccounting is the budgeting app's CSV export.
	ShapeDailyAccounting Shape = "daily"
	// ShapeMessyPaste is an e-invoice statement pasted as free text.
	ShapeMessyPaste Shape = "messy"
	// ShapeStructured is any table with a store-name column.
	ShapeStructured Shape = "structured"
)

const (
	colFlag     = "收支區分"
	colNote     = "備註"
	colCategory = "類別"
	colDate     = "日期"
	colStore    = "商店名稱"
	colItem     = "品項"
	colAmount   = "金額"
	colFixed    = "fixed_category"
)

// columnAliases maps an alias to the canonical column it stands for.
var columnAliases = map[string]string{
	"消費日期": colDate,
	"店名":   colStore,
	"總金額":  colAmount,
}

// Detect picks the shape of t from its column names, first match wins.
func Detect(t *Table) Shape {
	switch {
	case t.Has(colFlag, colNote):
		return ShapeDailyAccounting
	case !t.Has(colStore) && !t.Has("店名"):
		return ShapeMessyPaste
	default:
		return ShapeStructured
	}
}
