package store

import (
	"strings"
	"testing"

	"github.com/vyrodovalexey/grocerylist/internal/model"
)

func sampleItems() []model.GroceryItem {
	return []model.GroceryItem{
		{ID: "1", Name: "Milk", Quantity: "1", Category: model.CategoryDairy, Order: 0},
		{ID: "2", Name: "Bread", Quantity: "2", Category: model.CategoryBakery, Completed: true, Order: 1},
		{ID: "3", Name: "Cheese", Quantity: "1", Category: model.CategoryDairy, Completed: true, Order: 2},
		{ID: "4", Name: "Bananas", Quantity: "6", Category: model.CategoryProduce, Order: 3},
		{ID: "5", Name: "Rice", Quantity: "1 bag", Category: model.CategoryOther, Order: 4},
	}
}

func ids(items []model.GroceryItem) string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return strings.Join(out, ",")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		mode model.FilterMode
		want string
	}{
		{model.FilterAll, "1,2,3,4,5"},
		{model.FilterActive, "1,4,5"},
		{model.FilterCompleted, "2,3"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			// Act
			got := Filter(sampleItems(), tt.mode)

			// Assert
			if ids(got) != tt.want {
				t.Errorf("Filter(%s) = %s, want %s", tt.mode, ids(got), tt.want)
			}
		})
	}
}

func TestFilter_Partition(t *testing.T) {
	items := sampleItems()
	active := Filter(items, model.FilterActive)
	completed := Filter(items, model.FilterCompleted)

	if len(active)+len(completed) != len(items) {
		t.Fatalf("active(%d) + completed(%d) != total(%d)", len(active), len(completed), len(items))
	}

	seen := make(map[string]int)
	for _, item := range append(active, completed...) {
		seen[item.ID]++
	}
	for _, item := range items {
		if seen[item.ID] != 1 {
			t.Errorf("item %s appears %d times across partitions", item.ID, seen[item.ID])
		}
	}
}

func TestFilter_Empty(t *testing.T) {
	if got := Filter(nil, model.FilterActive); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}

func TestGroupByCategory(t *testing.T) {
	// Act
	grouped := GroupByCategory(sampleItems())

	// Assert
	if len(grouped) != len(model.Categories()) {
		t.Fatalf("len(grouped) = %d, want %d", len(grouped), len(model.Categories()))
	}
	for _, c := range model.Categories() {
		bucket, ok := grouped[c]
		if !ok {
			t.Errorf("category %s missing", c)
		}
		if bucket == nil {
			t.Errorf("bucket %s is nil, want empty slice", c)
		}
		for _, item := range bucket {
			if item.Category != c {
				t.Errorf("item %s in bucket %s has category %s", item.ID, c, item.Category)
			}
		}
	}

	if ids(grouped[model.CategoryDairy]) != "1,3" {
		t.Errorf("Dairy = %s, want 1,3", ids(grouped[model.CategoryDairy]))
	}
	if len(grouped[model.CategoryBaby]) != 0 {
		t.Errorf("Baby = %s, want empty", ids(grouped[model.CategoryBaby]))
	}
}

func TestGroupByCategory_FlattenIsCompleteInCategoryOrder(t *testing.T) {
	items := sampleItems()

	flat := GroupByCategory(items).Flatten()

	if ids(flat) != "4,1,3,2,5" {
		t.Errorf("Flatten() = %s, want 4,1,3,2,5", ids(flat))
	}
	if len(flat) != len(items) {
		t.Errorf("len(Flatten()) = %d, want %d", len(flat), len(items))
	}
}

func TestGroupByCategory_UnknownCategoryGoesToOther(t *testing.T) {
	// Arrange
	items := []model.GroceryItem{
		{ID: "a", Name: "Ice", Category: "Frozen"},
		{ID: "b", Name: "Foil", Category: model.CategoryOther},
		{ID: "c", Name: "Mystery"},
	}

	// Act
	grouped := GroupByCategory(items)

	// Assert
	if len(grouped) != len(model.Categories()) {
		t.Errorf("len(grouped) = %d, want %d", len(grouped), len(model.Categories()))
	}
	if ids(grouped[model.CategoryOther]) != "a,b,c" {
		t.Errorf("Other = %s, want a,b,c", ids(grouped[model.CategoryOther]))
	}
	if len(grouped.Flatten()) != len(items) {
		t.Errorf("len(Flatten()) = %d, want %d", len(grouped.Flatten()), len(items))
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		items []model.GroceryItem
		want  Summary
	}{
		{"empty", nil, Summary{}},
		{"mixed", sampleItems(), Summary{Total: 5, Completed: 2}},
		{
			"all done",
			[]model.GroceryItem{{ID: "1", Completed: true}, {ID: "2", Completed: true}},
			Summary{Total: 2, Completed: 2, AllCompleted: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.items); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShareText(t *testing.T) {
	// Act
	got := ShareText("Grocery List", sampleItems())

	// Assert
	want := "Grocery List\n\n" +
		"• Milk (1) - Dairy\n" +
		"• Bananas (6) - Produce\n" +
		"• Rice (1 bag) - Other"
	if got != want {
		t.Errorf("ShareText() =\n%s\nwant\n%s", got, want)
	}
}

func TestShareText_NothingLeft(t *testing.T) {
	items := []model.GroceryItem{{ID: "1", Name: "Milk", Completed: true}}

	got := ShareText("BBQ Party", items)

	if got != "BBQ Party\n\nList is empty" {
		t.Errorf("ShareText() = %q", got)
	}
}
