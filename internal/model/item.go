// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrInvalidFilter = errors.New("filter must be one of: all, active, completed")
)

// DefaultQuantity is used when a quantity is blank.
const DefaultQuantity = "1"

// GroceryItem is one row in a grocery list.
type GroceryItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Quantity  string   `json:"quantity"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
	Order     int      `json:"order"`
}

// NormalizeName trims surrounding whitespace from an item name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeQuantity trims a quantity and falls back to DefaultQuantity when blank.
func NormalizeQuantity(quantity string) string {
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return DefaultQuantity
	}
	return quantity
}

// ItemInput carries the user-editable fields of an item.
type ItemInput struct {
	Name     string   `json:"name"`
	Quantity string   `json:"quantity,omitempty"`
	Category Category `json:"category"`
}

// Normalize applies the trim and default rules in place.
// An empty category becomes Other.
func (in *ItemInput) Normalize() {
	in.Name = NormalizeName(in.Name)
	in.Quantity = NormalizeQuantity(in.Quantity)
	if in.Category == "" {
		in.Category = CategoryOther
	}
}

// Validate checks a normalized input.
func (in *ItemInput) Validate() error {
	if NormalizeName(in.Name) == "" {
		return ErrEmptyName
	}

	if !in.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(in.Category))
	}

	return nil
}

// FilterMode selects which items a list view shows.
type FilterMode string

// Filter modes.
const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

// ParseFilterMode maps text to a FilterMode. Empty text means FilterAll.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

// PresetList is a named template of uncategorized item names.
// Category is a free-text grouping label, not a grocery Category.
type PresetList struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Items       []string `json:"items" yaml:"items"`
}
