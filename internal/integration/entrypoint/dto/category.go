// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// CategoryRequest represents the request body for category creation and
// update. The owner is always the authenticated caller.
type CategoryRequest struct {
	TypeID uint   `json:"type_id" binding:"required"`
	Name   string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	TypeID    uint      `json:"type_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		UserID:    category.UserID,
		TypeID:    category.TypeID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		out[i] = ToCategoryResponse(category)
	}
	return CategoryListResponse{Categories: out}
}

// ParseCategoryFilters builds a filter set from category list query parameters.
func ParseCategoryFilters(ctx *gin.Context) filter.Set {
	set := filter.Set{}
	setList(set, ctx, "user_id")
	setList(set, ctx, "type_id")
	setKeywords(set, ctx, "name")
	return set
}
