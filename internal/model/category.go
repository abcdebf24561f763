package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned for any value outside the category enumeration.
var ErrInvalidCategory = errors.New(
	"category must be one of: Produce, Meat, Dairy, Bakery, Snacks, Drinks, Household, Baby, Other",
)

// Category is one of the nine fixed grocery taxonomy buckets.
type Category string

// Grocery categories, in display and categorizer precedence order.
const (
	CategoryProduce   Category = "Produce"
	CategoryMeat      Category = "Meat"
	CategoryDairy     Category = "Dairy"
	CategoryBakery    Category = "Bakery"
	CategorySnacks    Category = "Snacks"
	CategoryDrinks    Category = "Drinks"
	CategoryHousehold Category = "Household"
	CategoryBaby      Category = "Baby"
	CategoryOther     Category = "Other"
)

var categories = [...]Category{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryBakery,
	CategorySnacks,
	CategoryDrinks,
	CategoryHousehold,
	CategoryBaby,
	CategoryOther,
}

// Categories returns all categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the canonical category name.
func (c Category) String() string {
	return string(c)
}

// Emoji returns the display glyph for the category.
func (c Category) Emoji() string {
	switch c {
	case CategoryProduce:
		return "🥬"
	case CategoryMeat:
		return "🍖"
	case CategoryDairy:
		return "🥛"
	case CategoryBakery:
		return "🍞"
	case CategorySnacks:
		return "🍿"
	case CategoryDrinks:
		return "🧃"
	case CategoryHousehold:
		return "🧹"
	case CategoryBaby:
		return "🍼"
	case CategoryOther:
		return "📦"
	}
	return ""
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// UnmarshalJSON rejects names outside the enumeration. An empty string
// decodes to the unset category, the same as an omitted field.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding category: %w", err)
	}

	if strings.TrimSpace(s) == "" {
		*c = ""
		return nil
	}

	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// QuickAddItem is a one-tap staple with a preassigned category.
type QuickAddItem struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// QuickAddItems returns the staples offered for one-tap adding.
func QuickAddItems() []QuickAddItem {
	return []QuickAddItem{
		{Name: "Milk", Category: CategoryDairy},
		{Name: "Eggs", Category: CategoryDairy},
		{Name: "Bread", Category: CategoryBakery},
		{Name: "Bananas", Category: CategoryProduce},
		{Name: "Chicken", Category: CategoryMeat},
		{Name: "Rice", Category: CategoryOther},
		{Name: "Cheese", Category: CategoryDairy},
	}
}

// FindQuickAddItem looks up a staple by name, ignoring case.
func FindQuickAddItem(name string) (QuickAddItem, bool) {
	name = strings.TrimSpace(name)
	for _, item := range QuickAddItems() {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return QuickAddItem{}, false
}
