// Package adapter defines interfaces that are implemented in the integration
// layer. The store contracts treat persistence as an abstract transactional
// relational store; cascade and set-null behaviors are declared on the schema.
package adapter

import (
	"context"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// Store defines the generic persistence contract shared by all entity kinds.
// Every mutation is committed atomically: either the row is visible afterward
// or not at all.
type Store[E any] interface {
	// FindByID retrieves an entity by its id. Returns a domain NotFoundError
	// when absent.
	FindByID(ctx context.Context, id uint) (*E, error)

	// FindWithFilters retrieves all entities matching the filter set. A nil
	// or empty set imposes no constraint.
	FindWithFilters(ctx context.Context, set filter.Set) ([]*E, error)

	// Create persists a new entity and backfills its generated fields.
	Create(ctx context.Context, e *E) error

	// Update persists the full state of an existing entity and returns the
	// refreshed row.
	Update(ctx context.Context, e *E) (*E, error)

	// Delete removes an entity. Declared cascade/set-null rules apply to
	// dependent rows.
	Delete(ctx context.Context, e *E) error
}

// RoleStore extends Store with lookup by logical role name.
type RoleStore interface {
	Store[entity.Role]

	// FindByName retrieves a role by its unique name. Returns a domain
	// NotFoundError when absent.
	FindByName(ctx context.Context, name string) (*entity.Role, error)
}

// TypeStore extends Store with lookup by logical type name.
type TypeStore interface {
	Store[entity.Type]

	// FindByName retrieves a type by its unique name. Returns a domain
	// NotFoundError when absent.
	FindByName(ctx context.Context, name string) (*entity.Type, error)
}

// UserStore extends Store with lookup by email.
type UserStore interface {
	Store[entity.User]

	// FindByEmail retrieves a user by email. Returns (nil, nil) when no user
	// owns the email; absence is an expected outcome for uniqueness checks.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TransactionStore extends Store with filtered aggregation.
type TransactionStore interface {
	Store[entity.Transaction]

	// Totals aggregates transaction values matching the filter set into
	// income, expense and net totals.
	Totals(ctx context.Context, set filter.Set) (*entity.TransactionTotals, error)
}
