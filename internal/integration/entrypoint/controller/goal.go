// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	goals *service.GoalService
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(goals *service.GoalService) *GoalController {
	return &GoalController{goals: goals}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	goals, err := c.goals.List(ctx.Request.Context(), dto.ParseGoalFilters(ctx), actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(goals))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	goal, err := c.goals.GetByID(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	var req dto.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	goal, err := c.goals.Create(ctx.Request.Context(), service.GoalCreate{
		TypeID:      req.TypeID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TargetValue: req.TargetValue,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// Update handles PUT /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	goal, err := c.goals.Update(ctx.Request.Context(), id, service.GoalUpdate{
		TypeID:      req.TypeID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TargetValue: req.TargetValue,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	goal, err := c.goals.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}
