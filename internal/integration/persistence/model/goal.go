// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database. Deleting the owning
// user or the type cascades; deleting the category clears the reference.
type GoalModel struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	TypeID      uint            `gorm:"not null;index"`
	CategoryID  *uint           `gorm:"index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     time.Time       `gorm:"type:date;not null"`
	TargetValue decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	User     *UserModel     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Type     *TypeModel     `gorm:"foreignKey:TypeID;references:ID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:          m.ID,
		UserID:      m.UserID,
		TypeID:      m.TypeID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		TargetValue: m.TargetValue,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
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
