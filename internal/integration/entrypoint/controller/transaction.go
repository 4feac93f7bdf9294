// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	transactions *service.TransactionService
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(transactions *service.TransactionService) *TransactionController {
	return &TransactionController{transactions: transactions}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	transactions, err := c.transactions.List(ctx.Request.Context(), dto.ParseTransactionFilters(ctx), actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(transactions))
}

// Summary handles GET /transactions/summary requests. The same filters as
// List apply.
func (c *TransactionController) Summary(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	totals, err := c.transactions.Totals(ctx.Request.Context(), dto.ParseTransactionFilters(ctx), actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(totals))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	transaction, err := c.transactions.GetByID(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	transaction, err := c.transactions.Create(ctx.Request.Context(), service.TransactionCreate{
		TypeID:     req.TypeID,
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Value:      req.Value,
		Comment:    req.Comment,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	transaction, err := c.transactions.Update(ctx.Request.Context(), id, service.TransactionUpdate{
		TypeID:     req.TypeID,
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Value:      req.Value,
		Comment:    req.Comment,
	}, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	actor, ok := middlewareActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	transaction, err := c.transactions.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}
