// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// RoleRequest represents the request body for role creation and update.
type RoleRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// RoleResponse represents a single role in API responses.
type RoleResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	IsProtected bool      `json:"is_protected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleListResponse represents the response for listing roles.
type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// ToRoleResponse converts a domain Role entity to a RoleResponse DTO.
func ToRoleResponse(role *entity.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		IsProtected: role.IsProtected,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// ToRoleListResponse converts a list of roles to a RoleListResponse.
func ToRoleListResponse(roles []*entity.Role) RoleListResponse {
	out := make([]RoleResponse, len(roles))
	for i, role := range roles {
		out[i] = ToRoleResponse(role)
	}
	return RoleListResponse{Roles: out}
}

// ParseRoleFilters builds a filter set from role list query parameters.
func ParseRoleFilters(ctx *gin.Context) filter.Set {
	set := filter.Set{}
	setKeywords(set, ctx, "name")
	return set
}
