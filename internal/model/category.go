package model

// Category is a spending category label.
type Category string

const (
	CategoryFood          Category = "飲食"
	CategoryDailyGoods    Category = "日常用品"
	CategoryTransport     Category = "交通"
	CategoryUtilities     Category = "水電瓦斯"
	CategoryHousehold     Category = "居家"
	CategoryClothing      Category = "服飾"
	CategoryEntertainment Category = "娛樂"
	CategoryBeauty        Category = "美容美髮"
	CategorySocial        Category = "交際應酬"
	CategoryEducation     Category = "學習深造"
	CategoryVehicle       Category = "車"
	CategoryHealthcare    Category = "醫療保健"
	CategoryElectronics   Category = "3C家電"
	CategoryOther         Category = "其他"
)
