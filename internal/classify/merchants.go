package classify

import (
	"strings"

	"github.com/myasset-dev/myasset/internal/model"
)

type merchantEntry struct {
	fragments []string
	category  model.Category
}

// merchants is checked in order against the store name; matching is case-sensitive.
var merchants = []merchantEntry{
	{[]string{"7-ELEVEN", "全家"}, model.CategoryFood},
	{[]string{"全聯", "家樂福"}, model.CategoryDailyGoods},
	{[]string{"中油"}, model.CategoryVehicle},
	{[]string{"Uber", "高鐵", "台鐵"}, model.CategoryTransport},
	{[]string{"星巴克", "麥當勞", "壽司郎"}, model.CategoryFood},
	{[]string{"Uniqlo", "NET"}, model.CategoryClothing},
	{[]string{"屈臣氏", "康是美"}, model.CategoryHealthcare},
	{[]string{"好市多", "Costco"}, model.CategoryDailyGoods},
}

func matchMerchant(store string) (model.Category, bool) {
	for _, m := range merchants {
		for _, frag := range m.fragments {
			if strings.Contains(store, frag) {
				return m.category, true
			}
		}
	}
	return "", false
}
