// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// UpdateUserRequest represents the request body for user update. OldPassword
// is required only when NewPassword is set.
type UpdateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	RoleID      uint   `json:"role_id" binding:"required"`
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password,omitempty" binding:"omitempty,min=8"`
}

// UserResponse represents a single user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID          uint      `json:"id"`
	RoleID      uint      `json:"role_id"`
	Email       string    `json:"email"`
	IsProtected bool      `json:"is_protected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse represents the response for listing users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		RoleID:      user.RoleID,
		Email:       user.Email,
		IsProtected: user.IsProtected,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToUserListResponse converts a list of users to a UserListResponse.
func ToUserListResponse(users []*entity.User) UserListResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = ToUserResponse(user)
	}
	return UserListResponse{Users: out}
}

// ParseUserFilters builds a filter set from user list query parameters.
func ParseUserFilters(ctx *gin.Context) filter.Set {
	set := filter.Set{}
	setList(set, ctx, "role_id")
	setKeywords(set, ctx, "email")
	return set
}
