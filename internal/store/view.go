package store

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/grocerylist/internal/model"
)

// Filter returns the items selected by mode, preserving their order.
// FilterAll returns items unchanged.
func Filter(items []model.GroceryItem, mode model.FilterMode) []model.GroceryItem {
	var want bool
	switch mode {
	case model.FilterActive:
		want = false
	case model.FilterCompleted:
		want = true
	default:
		return items
	}

	out := make([]model.GroceryItem, 0, len(items))
	for _, item := range items {
		if item.Completed == want {
			out = append(out, item)
		}
	}
	return out
}

// Grouped maps every category to its items. All nine keys are present.
type Grouped map[model.Category][]model.GroceryItem

// GroupByCategory partitions items by category, keeping relative order
// inside each bucket. Items with a category outside the enumeration land
// in Other.
func GroupByCategory(items []model.GroceryItem) Grouped {
	grouped := make(Grouped, len(model.Categories()))
	for _, c := range model.Categories() {
		grouped[c] = []model.GroceryItem{}
	}

	for _, item := range items {
		c := item.Category
		if !c.Valid() {
			c = model.CategoryOther
		}
		grouped[c] = append(grouped[c], item)
	}
	return grouped
}

// Flatten concatenates the buckets in category order.
func (g Grouped) Flatten() []model.GroceryItem {
	out := make([]model.GroceryItem, 0)
	for _, c := range model.Categories() {
		out = append(out, g[c]...)
	}
	return out
}

// Summary holds the progress counters shown above a list.
type Summary struct {
	Total        int  `json:"total"`
	Completed    int  `json:"completed"`
	AllCompleted bool `json:"all_completed"`
}

// Summarize counts completed items.
func Summarize(items []model.GroceryItem) Summary {
	sum := Summary{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			sum.Completed++
		}
	}
	sum.AllCompleted = sum.Total > 0 && sum.Completed == sum.Total
	return sum
}

// ShareText renders the uncompleted items as plain text for sharing.
func ShareText(title string, items []model.GroceryItem) string {
	var lines []string
	for _, item := range Filter(items, model.FilterActive) {
		lines = append(lines, fmt.Sprintf("• %s (%s) - %s", item.Name, item.Quantity, item.Category))
	}

	body := strings.Join(lines, "\n")
	if body == "" {
		body = "List is empty"
	}

	return title + "\n\n" + body
}
