package categories

import "github.com/myasset-dev/myasset/internal/model"

// Default returns the closed category set in display order.
func Default() []model.Category {
	return []model.Category{
		model.CategoryFood,
		model.CategoryDailyGoods,
		model.CategoryTransport,
		model.CategoryUtilities,
		model.CategoryHousehold,
		model.CategoryClothing,
		model.CategoryEntertainment,
		model.CategoryBeauty,
		model.CategorySocial,
		model.CategoryEducation,
		model.CategoryVehicle,
		model.CategoryHealthcare,
		model.CategoryElectronics,
		model.CategoryOther,
	}
}
