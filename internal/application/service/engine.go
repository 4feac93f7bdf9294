// Package service implements the policy-driven entity services: a generic
// CRUD engine with pluggable validation hooks, specialized per entity kind
// with ownership, role and cross-entity association checks.
package service

import (
	"context"
	"log/slog"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// Fields is a column-name keyed value map used to carry entity fields between
// inputs, policies and the engine. Only names present in an entity's setter
// allow-list are ever applied; everything else is dropped silently.
type Fields map[string]any

// Input is implemented by create/update input types. Fields returns the
// entity columns an input is allowed to set; values the policy layer controls
// (such as the owner id) are never part of an input's Fields.
type Input interface {
	Fields() Fields
}

// Hooks holds the per-entity validation strategy supplied to an Engine.
// A nil hook falls back to the default behavior: no validation for create,
// existence check for update and delete. Update and delete hooks return the
// pre-mutation entity.
type Hooks[E any, C Input, U Input] struct {
	ValidateCreate func(ctx context.Context, input C, actor *entity.User) error
	ValidateUpdate func(ctx context.Context, id uint, input U, actor *entity.User) (*E, error)
	ValidateDelete func(ctx context.Context, id uint, actor *entity.User) (*E, error)
}

// Engine is the entity-agnostic CRUD service. Every mutating operation runs
// validate, then mutate, then persist; validation failure aborts before any
// store mutation.
type Engine[E any, C Input, U Input] struct {
	store  adapter.Store[E]
	kind   entity.Kind
	apply  func(*E, Fields)
	hooks  Hooks[E, C, U]
	logger *slog.Logger
}

// NewEngine creates a CRUD engine for one entity kind. apply is the entity's
// setter allow-list: it copies recognized column values from a Fields map
// onto the entity and ignores everything else.
func NewEngine[E any, C Input, U Input](
	store adapter.Store[E],
	kind entity.Kind,
	apply func(*E, Fields),
	hooks Hooks[E, C, U],
	logger *slog.Logger,
) *Engine[E, C, U] {
	return &Engine[E, C, U]{
		store:  store,
		kind:   kind,
		apply:  apply,
		hooks:  hooks,
		logger: logger,
	}
}

// GetByID retrieves an entity by id. Absent ids surface as a typed not-found
// error, never as a nil entity.
func (e *Engine[E, C, U]) GetByID(ctx context.Context, id uint) (*E, error) {
	e.logger.Debug("fetching entity", "kind", e.kind, "id", id)
	return e.store.FindByID(ctx, id)
}

// List retrieves all entities matching the filter set. A nil set imposes no
// constraint beyond whatever scoping the calling policy already applied.
func (e *Engine[E, C, U]) List(ctx context.Context, set filter.Set) ([]*E, error) {
	e.logger.Debug("listing entities", "kind", e.kind, "filters", len(set))
	return e.store.FindWithFilters(ctx, set)
}

// Create validates the input, merges the input's fields with the
// policy-supplied extra fields and persists the new entity. Extra fields are
// applied after the input's so that caller-controlled input can never smuggle
// a column only the policy layer is allowed to set.
func (e *Engine[E, C, U]) Create(ctx context.Context, input C, extra Fields, actor *entity.User) (*E, error) {
	e.logger.Debug("creating entity", "kind", e.kind)

	if e.hooks.ValidateCreate != nil {
		if err := e.hooks.ValidateCreate(ctx, input, actor); err != nil {
			return nil, err
		}
	}

	fields := input.Fields()
	for name, value := range extra {
		fields[name] = value
	}

	created := new(E)
	e.apply(created, fields)

	if err := e.store.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update validates, merges recognized fields over the existing entity and
// persists it, returning the refreshed row.
func (e *Engine[E, C, U]) Update(ctx context.Context, id uint, input U, extra Fields, actor *entity.User) (*E, error) {
	e.logger.Debug("updating entity", "kind", e.kind, "id", id)

	existing, err := e.validateUpdate(ctx, id, input, actor)
	if err != nil {
		return nil, err
	}

	fields := input.Fields()
	for name, value := range extra {
		fields[name] = value
	}
	e.apply(existing, fields)

	return e.store.Update(ctx, existing)
}

// Delete validates and deletes, returning the entity as it was before
// deletion. A second delete of the same id fails not-found.
func (e *Engine[E, C, U]) Delete(ctx context.Context, id uint, actor *entity.User) (*E, error) {
	e.logger.Debug("deleting entity", "kind", e.kind, "id", id)

	existing, err := e.validateDelete(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if err := e.store.Delete(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (e *Engine[E, C, U]) validateUpdate(ctx context.Context, id uint, input U, actor *entity.User) (*E, error) {
	if e.hooks.ValidateUpdate != nil {
		return e.hooks.ValidateUpdate(ctx, id, input, actor)
	}
	return e.store.FindByID(ctx, id)
}

func (e *Engine[E, C, U]) validateDelete(ctx context.Context, id uint, actor *entity.User) (*E, error) {
	if e.hooks.ValidateDelete != nil {
		return e.hooks.ValidateDelete(ctx, id, actor)
	}
	return e.store.FindByID(ctx, id)
}
