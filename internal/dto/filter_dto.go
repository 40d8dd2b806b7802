package dto

import "github.com/jobdeck/api/internal/model"

// FilterCategoryDTO bundles a category with its values for the search UI.
type FilterCategoryDTO struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	MultiSelect bool                `json:"multi_select"`
	Values      []model.FilterValue `json:"values"`
}

type FilterCategoryInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MultiSelect bool   `json:"multi_select"`
}

type FilterValueInput struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
}
