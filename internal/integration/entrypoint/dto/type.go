// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// TypeRequest represents the request body for type creation and update.
type TypeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// TypeResponse represents a single type in API responses.
type TypeResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TypeListResponse represents the response for listing types.
type TypeListResponse struct {
	Types []TypeResponse `json:"types"`
}

// ToTypeResponse converts a domain Type entity to a TypeResponse DTO.
func ToTypeResponse(t *entity.Type) TypeResponse {
	return TypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTypeListResponse converts a list of types to a TypeListResponse.
func ToTypeListResponse(types []*entity.Type) TypeListResponse {
	out := make([]TypeResponse, len(types))
	for i, t := range types {
		out[i] = ToTypeResponse(t)
	}
	return TypeListResponse{Types: out}
}

// ParseTypeFilters builds a filter set from type list query parameters.
func ParseTypeFilters(ctx *gin.Context) filter.Set {
	set := filter.Set{}
	if names := ctx.QueryArray("name"); len(names) > 0 {
		set["name"] = names
	}
	return set
}
