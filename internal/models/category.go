package models

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoryAll is the listing wildcard.
const CategoryAll = "all"

var categories = []Category{
	{ID: "music", Name: "Music", Icon: "music"},
	{ID: "arts", Name: "Arts", Icon: "arts"},
	{ID: "sports", Name: "Sports", Icon: "sports"},
	{ID: "social", Name: "Social", Icon: "social"},
	{ID: "food", Name: "Food & Drink", Icon: "food"},
	{ID: "photography", Name: "Photography", Icon: "photography"},
	{ID: "entertainment", Name: "Entertainment", Icon: "entertainment"},
	{ID: "wellness", Name: "Wellness", Icon: "wellness"},
}

// Categories returns a copy of the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func CategoryByID(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func CategoryByName(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
