// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// GoalRequest represents the request body for goal creation and update.
type GoalRequest struct {
	TypeID      uint            `json:"type_id" binding:"required"`
	CategoryID  *uint           `json:"category_id,omitempty"`
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	StartDate   time.Time       `json:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate     time.Time       `json:"end_date" binding:"required" time_format:"2006-01-02"`
	TargetValue decimal.Decimal `json:"target_value" binding:"required"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	TypeID      uint            `json:"type_id"`
	CategoryID  *uint           `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	TargetValue decimal.Decimal `json:"target_value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(goal *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		UserID:      goal.UserID,
		TypeID:      goal.TypeID,
		CategoryID:  goal.CategoryID,
		Name:        goal.Name,
		StartDate:   goal.StartDate,
		EndDate:     goal.EndDate,
		TargetValue: goal.TargetValue,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goals to a GoalListResponse.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	out := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		out[i] = ToGoalResponse(goal)
	}
	return GoalListResponse{Goals: out}
}

// ParseGoalFilters builds a filter set from goal list query parameters.
func ParseGoalFilters(ctx *gin.Context) filter.Set {
	set := filter.Set{}
	setList(set, ctx, "user_id")
	setList(set, ctx, "type_id")
	setList(set, ctx, "category_id")
	setDateBound(set, ctx, "start_date_gt")
	setDateBound(set, ctx, "start_date_lt")
	setDateBound(set, ctx, "end_date_gt")
	setDateBound(set, ctx, "end_date_lt")
	setDecimalBound(set, ctx, "target_value_gt")
	setDecimalBound(set, ctx, "target_value_lt")
	setKeywords(set, ctx, "name")
	return set
}
