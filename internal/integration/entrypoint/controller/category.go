// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	categories *service.CategoryService
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(categories *service.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	categories, err := c.categories.List(ctx.Request.Context(), dto.ParseCategoryFilters(ctx), actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Get handles GET /categories/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	category, err := c.categories.GetByID(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	category, err := c.categories.Create(ctx.Request.Context(), service.CategoryCreate{
		TypeID: req.TypeID,
		Name:   req.Name,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	category, err := c.categories.Update(ctx.Request.Context(), id, service.CategoryUpdate{
		TypeID: req.TypeID,
		Name:   req.Name,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	category, err := c.categories.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}
