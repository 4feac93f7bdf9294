package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// TransactionCreate is the input for recording a transaction.
type TransactionCreate struct {
	TypeID     uint
	CategoryID *uint
	Date       time.Time
	Value      decimal.Decimal
	Comment    string
}

// Fields implements the Input interface.
func (c TransactionCreate) Fields() Fields {
	return Fields{
		"type_id":     c.TypeID,
		"category_id": c.CategoryID,
		"date":        c.Date,
		"value":       c.Value,
		"comment":     c.Comment,
	}
}

// TransactionUpdate is the input for updating a transaction.
type TransactionUpdate struct {
	TypeID     uint
	CategoryID *uint
	Date       time.Time
	Value      decimal.Decimal
	Comment    string
}

// Fields implements the Input interface.
func (u TransactionUpdate) Fields() Fields {
	return Fields{
		"type_id":     u.TypeID,
		"category_id": u.CategoryID,
		"date":        u.Date,
		"value":       u.Value,
		"comment":     u.Comment,
	}
}

func applyTransactionFields(t *entity.Transaction, fields Fields) {
	for name, value := range fields {
		switch name {
		case "user_id":
			if v, ok := value.(uint); ok {
				t.UserID = v
			}
		case "type_id":
			if v, ok := value.(uint); ok {
				t.TypeID = v
			}
		case "category_id":
			if v, ok := value.(*uint); ok {
				t.CategoryID = v
			}
		case "date":
			if v, ok := value.(time.Time); ok {
				t.Date = v
			}
		case "value":
			if v, ok := value.(decimal.Decimal); ok {
				t.Value = v
			}
		case "comment":
			if v, ok := value.(string); ok {
				t.Comment = v
			}
		}
	}
}

// TransactionService is the authorization policy for transactions.
type TransactionService struct {
	engine     *Engine[entity.Transaction, TransactionCreate, TransactionUpdate]
	store      adapter.TransactionStore
	users      *UserService
	types      *TypeService
	categories *CategoryService
	logger     *slog.Logger
}

// NewTransactionService creates a transaction policy service.
func NewTransactionService(
	store adapter.TransactionStore,
	users *UserService,
	types *TypeService,
	categories *CategoryService,
	logger *slog.Logger,
) *TransactionService {
	s := &TransactionService{
		store:      store,
		users:      users,
		types:      types,
		categories: categories,
		logger:     logger,
	}
	s.engine = NewEngine[entity.Transaction, TransactionCreate, TransactionUpdate](store, entity.KindTransaction, applyTransactionFields, Hooks[entity.Transaction, TransactionCreate, TransactionUpdate]{
		ValidateCreate: s.validateCreate,
		ValidateUpdate: s.validateUpdate,
		ValidateDelete: s.validateDelete,
	}, logger)
	return s
}

// GetByID retrieves a transaction, enforcing ownership for non-admins.
func (s *TransactionService) GetByID(ctx context.Context, id uint, actor *entity.User) (*entity.Transaction, error) {
	transaction, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, transaction.UserID, actor); err != nil {
		return nil, err
	}
	return transaction, nil
}

// List retrieves transactions matching the filter set, scoped to the actor's
// own rows unless the actor is an admin.
func (s *TransactionService) List(ctx context.Context, set filter.Set, actor *entity.User) ([]*entity.Transaction, error) {
	set, err := s.scopeFilters(ctx, set, actor)
	if err != nil {
		return nil, err
	}
	return s.engine.List(ctx, set)
}

// Totals aggregates income, expense and net totals over the transactions
// matching the filter set, with the same ownership scoping as List.
func (s *TransactionService) Totals(ctx context.Context, set filter.Set, actor *entity.User) (*entity.TransactionTotals, error) {
	set, err := s.scopeFilters(ctx, set, actor)
	if err != nil {
		return nil, err
	}
	return s.store.Totals(ctx, set)
}

// Create records a new transaction owned by actor.
func (s *TransactionService) Create(ctx context.Context, input TransactionCreate, actor *entity.User) (*entity.Transaction, error) {
	return s.engine.Create(ctx, input, Fields{"user_id": actor.ID}, actor)
}

// Update applies a transaction update on behalf of actor.
func (s *TransactionService) Update(ctx context.Context, id uint, input TransactionUpdate, actor *entity.User) (*entity.Transaction, error) {
	return s.engine.Update(ctx, id, input, nil, actor)
}

// Delete deletes a transaction on behalf of actor.
func (s *TransactionService) Delete(ctx context.Context, id uint, actor *entity.User) (*entity.Transaction, error) {
	return s.engine.Delete(ctx, id, actor)
}

func (s *TransactionService) scopeFilters(ctx context.Context, set filter.Set, actor *entity.User) (filter.Set, error) {
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !admin {
		set = set.Clone()
		set["user_id"] = []uint{actor.ID}
	}
	return set, nil
}

func (s *TransactionService) authorizeOwner(ctx context.Context, ownerID uint, actor *entity.User) error {
	if actor.ID == ownerID {
		return nil
	}
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !admin {
		return domainerror.NewForbidden("users can only view their own transactions")
	}
	return nil
}

// validateReferences checks that the referenced type exists and, when a
// category is given, that it is visible to the actor and shares the type.
func (s *TransactionService) validateReferences(ctx context.Context, typeID uint, categoryID *uint, actor *entity.User) error {
	if _, err := s.types.GetByID(ctx, typeID); err != nil {
		return err
	}
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *categoryID, actor)
	if err != nil {
		return err
	}
	if category.TypeID != typeID {
		return domainerror.NewNotAssociated(fmt.Sprintf("category %d is not of type %d", *categoryID, typeID))
	}
	return nil
}

func (s *TransactionService) validateCreate(ctx context.Context, input TransactionCreate, actor *entity.User) error {
	return s.validateReferences(ctx, input.TypeID, input.CategoryID, actor)
}

func (s *TransactionService) validateUpdate(ctx context.Context, id uint, input TransactionUpdate, actor *entity.User) (*entity.Transaction, error) {
	transaction, err := s.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, input.TypeID, input.CategoryID, actor); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *TransactionService) validateDelete(ctx context.Context, id uint, actor *entity.User) (*entity.Transaction, error) {
	return s.GetByID(ctx, id, actor)
}
