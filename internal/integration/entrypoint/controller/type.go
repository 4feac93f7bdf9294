// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// TypeController handles type endpoints.
type TypeController struct {
	types *service.TypeService
}

// NewTypeController creates a new type controller instance.
func NewTypeController(types *service.TypeService) *TypeController {
	return &TypeController{types: types}
}

// List handles GET /types requests.
func (c *TypeController) List(ctx *gin.Context) {
	types, err := c.types.List(ctx.Request.Context(), dto.ParseTypeFilters(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTypeListResponse(types))
}

// Get handles GET /types/:id requests.
func (c *TypeController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	t, err := c.types.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTypeResponse(t))
}

// Create handles POST /types requests.
func (c *TypeController) Create(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	var req dto.TypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	t, err := c.types.Create(ctx.Request.Context(), service.TypeCreate{Name: req.Name}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTypeResponse(t))
}

// Update handles PUT /types/:id requests.
func (c *TypeController) Update(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.TypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	t, err := c.types.Update(ctx.Request.Context(), id, service.TypeUpdate{Name: req.Name}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTypeResponse(t))
}

// Delete handles DELETE /types/:id requests.
func (c *TypeController) Delete(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	t, err := c.types.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTypeResponse(t))
}
