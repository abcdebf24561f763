// Package handler provides HTTP request handlers for the grocery list API.
package handler

import (
	"github.com/vyrodovalexey/grocerylist/internal/catalog"
	"github.com/vyrodovalexey/grocerylist/internal/model"
	"github.com/vyrodovalexey/grocerylist/internal/store"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status string `json:"status"`
}

// CategoryInfo is one entry of the category listing.
type CategoryInfo struct {
	Name  model.Category `json:"name"`
	Emoji string         `json:"emoji"`
}

// CategorizeResponse is the categorizer's answer for a name.
type CategorizeResponse struct {
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
}

// CategoryGroup is one non-empty bucket of a grouped list.
type CategoryGroup struct {
	Category model.Category      `json:"category"`
	Emoji    string              `json:"emoji"`
	Items    []model.GroceryItem `json:"items"`
}

// ListResponse is a snapshot of one grocery list.
type ListResponse struct {
	List    string              `json:"list"`
	Title   string              `json:"title"`
	Filter  model.FilterMode    `json:"filter"`
	Items   []model.GroceryItem `json:"items"`
	Groups  []CategoryGroup     `json:"groups,omitempty"`
	Summary store.Summary       `json:"summary"`
}

// PresetResponse is a single preset with its display title.
type PresetResponse struct {
	Slug   string           `json:"slug"`
	Title  string           `json:"title"`
	Preset model.PresetList `json:"preset"`
}

// PresetSearchResponse holds search results grouped by label.
type PresetSearchResponse struct {
	Query  string          `json:"query"`
	Total  int             `json:"total"`
	Groups []catalog.Group `json:"groups"`
}
