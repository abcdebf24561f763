// Package categorize assigns grocery categories to free-text item names.
//
// Matching is plain substring containment on the lower-cased name, tested
// rule by rule in a fixed order; the first rule with a matching keyword wins.
// Substring matching has known false positives ("barbecue" contains "bar")
// which are kept as-is.
package categorize

import (
	"strings"

	"github.com/vyrodovalexey/grocerylist/internal/model"
)

type rule struct {
	category model.Category
	keywords []string
}

var rules = []rule{
	{
		category: model.CategoryProduce,
		keywords: []string{
			"vegetable", "fruit", "lettuce", "tomato", "potato", "onion", "garlic",
			"carrot", "broccoli", "spinach", "kale", "cucumber", "pepper", "avocado",
			"banana", "apple", "orange", "berr", "grape", "melon", "pear", "peach",
			"plum", "lemon", "lime", "herbs", "basil", "cilantro", "parsley", "ginger",
			"mushroom", "squash", "zucchini", "eggplant", "celery", "radish", "beet",
			"asparagus", "cabbage",
		},
	},
	{
		category: model.CategoryMeat,
		keywords: []string{
			"meat", "chicken", "beef", "pork", "turkey", "fish", "salmon", "tuna",
			"shrimp", "bacon", "sausage", "steak", "ground", "ribs", "ham", "lamb",
			"duck", "wings", "thigh", "breast",
		},
	},
	{
		category: model.CategoryDairy,
		keywords: []string{
			"milk", "cheese", "yogurt", "butter", "cream", "egg", "dairy", "cottage",
			"sour cream", "whipped", "ice cream", "mozzarella", "cheddar", "parmesan",
			"feta", "brie",
		},
	},
	{
		category: model.CategoryBakery,
		keywords: []string{
			"bread", "roll", "bagel", "muffin", "croissant", "bun", "tortilla", "pita",
			"naan", "pastry", "donut", "cake", "cookie", "brownie", "pie",
		},
	},
	{
		category: model.CategoryDrinks,
		keywords: []string{
			"water", "juice", "soda", "coffee", "tea", "beer", "wine", "liquor",
			"champagne", "cider", "kombucha", "smoothie", "protein shake",
			"energy drink", "sports drink", "lemonade",
		},
	},
	{
		category: model.CategorySnacks,
		keywords: []string{
			"chip", "cracker", "pretzel", "popcorn", "candy", "chocolate", "nuts",
			"trail mix", "granola", "bar", "jerky", "snack",
		},
	},
	{
		category: model.CategoryHousehold,
		keywords: []string{
			"soap", "detergent", "paper", "toilet", "towel", "clean", "trash", "bag",
			"napkin", "plate", "cup", "batteries", "flashlight",
		},
	},
	{
		category: model.CategoryBaby,
		keywords: []string{"baby", "formula", "diaper", "wipes", "infant"},
	},
}

// Categorize returns the category of the first rule matching name,
// or Other when nothing matches.
func Categorize(name string) model.Category {
	lower := strings.ToLower(name)
	if lower == "" {
		return model.CategoryOther
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}

	return model.CategoryOther
}

// Keywords returns a copy of the keywords that select c.
// Other has none; it is the fallback.
func Keywords(c model.Category) []string {
	for _, r := range rules {
		if r.category == c {
			out := make([]string, len(r.keywords))
			copy(out, r.keywords)
			return out
		}
	}
	return nil
}
