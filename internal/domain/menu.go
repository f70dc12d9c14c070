package domain

// MenuCategory holds the menu items of one category, in menu order.
type MenuCategory struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// GroupMenuItemsByCategory groups items for presentation. Categories
// appear in first-seen order, items keep their relative order.
func GroupMenuItemsByCategory(items []MenuItem) []MenuCategory {
	index := make(map[string]int)
	grouped := make([]MenuCategory, 0)

	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(grouped)
			index[item.Category] = i
			grouped = append(grouped, MenuCategory{Category: item.Category})
		}
		grouped[i].Items = append(grouped[i].Items, item)
	}

	return grouped
}

// DefaultMenuItems is the built-in drink catalog used when no external
// menu source is configured.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ID: 1, Category: "ビール", Name: "生ビール", Price: 600},
		{ID: 2, Category: "ビール", Name: "瓶ビール", Price: 650},
		{ID: 3, Category: "ハイボール", Name: "ハイボール", Price: 700},
		{ID: 4, Category: "ハイボール", Name: "ジンジャーハイボール", Price: 750},
		{ID: 5, Category: "サワー", Name: "レモンサワー", Price: 550},
		{ID: 6, Category: "サワー", Name: "グレープフルーツサワー", Price: 550},
		{ID: 7, Category: "焼酎", Name: "芋焼酎", Price: 500},
		{ID: 8, Category: "焼酎", Name: "麦焼酎", Price: 500},
		{ID: 9, Category: "ソフトドリンク", Name: "ウーロン茶", Price: 300},
		{ID: 10, Category: "ソフトドリンク", Name: "オレンジジュース", Price: 350},
	}
}
