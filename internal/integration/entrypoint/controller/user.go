// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// UserController handles user endpoints. Creation goes through /auth/register.
type UserController struct {
	users *service.UserService
}

// NewUserController creates a new user controller instance.
func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// List handles GET /users requests.
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.users.List(ctx.Request.Context(), dto.ParseUserFilters(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// Get handles GET /users/:id requests.
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	user, err := c.users.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Update handles PUT /users/:id requests.
func (c *UserController) Update(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := c.users.Update(ctx.Request.Context(), id, service.UserUpdate{
		Email:       req.Email,
		RoleID:      req.RoleID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /users/:id requests.
func (c *UserController) Delete(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	user, err := c.users.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}
