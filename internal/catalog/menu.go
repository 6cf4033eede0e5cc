package catalog

import "github.com/mmeshcher/makburgers-bot/internal/model"

// Default возвращает меню Makburgers.
func Default() *Catalog {
	c, err := New([]model.Category{
		{
			Name: "Fast Food",
			Icon: "🍔",
			Items: []model.CatalogItem{
				{Code: "item_h", Name: "Hotdog", Price: 15000},
				{Code: "item_l", Name: "Lavash", Price: 25000},
				{Code: "item_b", Name: "Burger", Price: 30000},
			},
		},
		{
			Name: "Ichimliklar",
			Icon: "🥤",
			Items: []model.CatalogItem{
				{Code: "item_c", Name: "Coca Cola (1L)", Price: 10000},
				{Code: "item_f", Name: "Fanta (1L)", Price: 9000},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
