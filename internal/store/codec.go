package store

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/vyrodovalexey/grocerylist/internal/model"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// encodeItems serializes the full collection for the blob store.
func encodeItems(items []model.GroceryItem) (string, error) {
	if items == nil {
		items = []model.GroceryItem{}
	}

	data, err := codec.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}

	return string(data), nil
}

// decodeItems parses a blob written by encodeItems.
func decodeItems(blob string) ([]model.GroceryItem, error) {
	var items []model.GroceryItem
	if err := codec.UnmarshalFromString(blob, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	if items == nil {
		items = []model.GroceryItem{}
	}

	for _, item := range items {
		if !item.Category.Valid() {
			return nil, fmt.Errorf("decoding item %q: %w: %q", item.ID, model.ErrInvalidCategory, string(item.Category))
		}
	}

	return items, nil
}
