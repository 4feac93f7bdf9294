// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// RoleController handles role endpoints.
type RoleController struct {
	roles *service.RoleService
}

// NewRoleController creates a new role controller instance.
func NewRoleController(roles *service.RoleService) *RoleController {
	return &RoleController{roles: roles}
}

// List handles GET /roles requests.
func (c *RoleController) List(ctx *gin.Context) {
	roles, err := c.roles.List(ctx.Request.Context(), dto.ParseRoleFilters(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRoleListResponse(roles))
}

// Get handles GET /roles/:id requests.
func (c *RoleController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	role, err := c.roles.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// Create handles POST /roles requests.
func (c *RoleController) Create(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	var req dto.RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	role, err := c.roles.Create(ctx.Request.Context(), service.RoleCreate{Name: req.Name}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// Update handles PUT /roles/:id requests.
func (c *RoleController) Update(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	role, err := c.roles.Update(ctx.Request.Context(), id, service.RoleUpdate{Name: req.Name}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRoleResponse(role))
}

// Delete handles DELETE /roles/:id requests.
func (c *RoleController) Delete(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	role, err := c.roles.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToRoleResponse(role))
}
