// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerror "github.com/piggybank/backend/internal/domain/error"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// respondError maps domain errors to HTTP status codes. The service layer
// never encodes status codes itself.
func respondError(ctx *gin.Context, err error) {
	var notFound *domainerror.NotFoundError
	var forbidden *domainerror.ForbiddenError
	var notAssociated *domainerror.NotAssociatedError
	var emailExists *domainerror.EmailExistsError
	var validation *domainerror.ValidationError

	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &forbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &notAssociated), errors.As(err, &emailExists), errors.As(err, &validation):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrInvalidCredentials),
		errors.Is(err, domainerror.ErrInvalidToken),
		errors.Is(err, domainerror.ErrExpiredToken),
		errors.Is(err, domainerror.ErrTokenInvalidated):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// parseID parses the :id path parameter. A malformed id responds 400 and
// returns false.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
