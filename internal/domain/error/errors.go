// Package error defines domain-specific errors for the piggybank application.
package error

import (
	"fmt"

	"github.com/piggybank/backend/internal/domain/entity"
)

// NotFoundError is returned when an entity cannot be found by id or logical
// name. The transport layer maps it to a 404 response.
type NotFoundError struct {
	Kind entity.Kind
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

// NewNotFound creates a NotFoundError for a numeric identifier.
func NewNotFound(kind entity.Kind, id uint) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: fmt.Sprintf("%d", id)}
}

// NewNotFoundByName creates a NotFoundError for a logical name lookup.
func NewNotFoundByName(kind entity.Kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: name}
}

// ForbiddenError is returned when an authenticated caller lacks privilege for
// the requested entity or action. Terminal for the request; never retried.
type ForbiddenError struct {
	Detail string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	return e.Detail
}

// NewForbidden creates a ForbiddenError with the given detail.
func NewForbidden(detail string) *ForbiddenError {
	return &ForbiddenError{Detail: detail}
}

// NotAssociatedError is returned when a referenced sub-entity exists but
// violates a cross-entity invariant, e.g. a category that does not share the
// referencing record's type.
type NotAssociatedError struct {
	Detail string
}

// Error implements the error interface.
func (e *NotAssociatedError) Error() string {
	return e.Detail
}

// NewNotAssociated creates a NotAssociatedError with the given detail.
func NewNotAssociated(detail string) *NotAssociatedError {
	return &NotAssociatedError{Detail: detail}
}

// EmailExistsError is returned when a user registration or update collides
// with an email already owned by another user.
type EmailExistsError struct {
	Email string
}

// Error implements the error interface.
func (e *EmailExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

// NewEmailExists creates an EmailExistsError for the given email.
func NewEmailExists(email string) *EmailExistsError {
	return &EmailExistsError{Email: email}
}

// ValidationError is returned when an input violates an entity invariant that
// is enforced by the policy layer, e.g. goal date ordering.
type ValidationError struct {
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Detail
}

// NewValidation creates a ValidationError with the given detail.
func NewValidation(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}
