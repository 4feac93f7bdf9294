// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
	"github.com/piggybank/backend/internal/integration/entrypoint/middleware"
)

// middlewareActor extracts the authenticated user set by the auth middleware.
// A missing actor responds 401 and returns false.
func middlewareActor(ctx *gin.Context) (*entity.User, bool) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "user not authenticated"})
		return nil, false
	}
	return actor, true
}
