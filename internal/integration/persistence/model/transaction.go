// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Deleting the owning user or the type cascades; deleting the category
// clears the reference.
type TransactionModel struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"not null;index"`
	TypeID     uint            `gorm:"not null;index"`
	CategoryID *uint           `gorm:"index"`
	Date       time.Time       `gorm:"type:date;not null;index"`
	Value      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Comment    string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`

	User     *UserModel     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Type     *TypeModel     `gorm:"foreignKey:TypeID;references:ID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		TypeID:     m.TypeID,
		CategoryID: m.CategoryID,
		Date:       m.Date,
		Value:      m.Value,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         transaction.ID,
		UserID:     transaction.UserID,
		TypeID:     transaction.TypeID,
		CategoryID: transaction.CategoryID,
		Date:       transaction.Date,
		Value:      transaction.Value,
		Comment:    transaction.Comment,
		CreatedAt:  transaction.CreatedAt,
		UpdatedAt:  transaction.UpdatedAt,
	}
}
