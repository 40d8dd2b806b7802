package usecase

import (
	"context"
	"strings"

	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/repository"
	"github.com/jobdeck/api/internal/util"
)

type FilterUsecase struct {
	filters *repository.FilterRepository
}

func NewFilterUsecase(filters *repository.FilterRepository) *FilterUsecase {
	return &FilterUsecase{filters: filters}
}

// CreateCategory slugifies the id (falling back to the name) and upserts.
// A duplicate id silently overwrites the existing category.
func (uc *FilterUsecase) CreateCategory(ctx context.Context, in dto.FilterCategoryInput) (*model.FilterCategory, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, util.NewFormError("missing required filter fields", map[string]string{"name": "required"})
	}
	id := util.Slugify(in.ID)
	if id == "" {
		id = util.Slugify(in.Name)
	}
	category := &model.FilterCategory{
		ID:          id,
		Name:        in.Name,
		MultiSelect: in.MultiSelect,
	}
	if err := uc.filters.UpsertCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// CreateValue slugifies the id (falling back to the label) and upserts into
// the given category.
func (uc *FilterUsecase) CreateValue(ctx context.Context, in dto.FilterValueInput) (*model.FilterValue, error) {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(in.Label) == "" {
		fieldErrors["label"] = "required"
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		fieldErrors["category_id"] = "required"
	}
	if len(fieldErrors) > 0 {
		return nil, util.NewFormError("missing required filter fields", fieldErrors)
	}
	id := util.Slugify(in.ID)
	if id == "" {
		id = util.Slugify(in.Label)
	}
	value := &model.FilterValue{
		ID:         id,
		CategoryID: util.Slugify(in.CategoryID),
		Label:      in.Label,
	}
	if err := uc.filters.UpsertValue(ctx, value); err != nil {
		return nil, err
	}
	return value, nil
}

// Taxonomy returns every category with its values, ready for UI controls.
func (uc *FilterUsecase) Taxonomy(ctx context.Context) ([]dto.FilterCategoryDTO, error) {
	categories, err := uc.filters.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	values, err := uc.filters.ListValues(ctx, "")
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]model.FilterValue, len(categories))
	for _, v := range values {
		byCategory[v.CategoryID] = append(byCategory[v.CategoryID], v)
	}
	out := make([]dto.FilterCategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.FilterCategoryDTO{
			ID:          c.ID,
			Name:        c.Name,
			MultiSelect: c.MultiSelect,
			Values:      byCategory[c.ID],
		})
	}
	return out, nil
}

// DeleteCategory removes a category and all of its values.
func (uc *FilterUsecase) DeleteCategory(ctx context.Context, id string) error {
	return uc.filters.DeleteCategory(ctx, util.Slugify(id))
}

func (uc *FilterUsecase) DeleteValue(ctx context.Context, id string) error {
	return uc.filters.DeleteValue(ctx, util.Slugify(id))
}
