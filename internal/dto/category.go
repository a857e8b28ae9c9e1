package dto

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string                 `json:"name" binding:"required"`
	Icon string                 `json:"icon"`
	Type domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// UpdateCategoryRequest defines the mutable fields of a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string                 `json:"categoryID"`
	Name          string                 `json:"name"`
	Icon          string                 `json:"icon"`
	Type          domain.TransactionType `json:"type"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		Icon:          cat.Icon,
		Type:          cat.Type,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of categories to DTOs.
func ToListCategoryResponse(cats []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cats))
	for i := range cats {
		res[i] = ToCategoryResponse(&cats[i])
	}
	return res
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type   string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Limit  int    `form:"limit,default=100"`
	Offset int    `form:"offset,default=0"`
}
