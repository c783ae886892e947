package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells income and expense rows apart.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is a single dated income or expense record.
type Transaction struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint            `gorm:"index;not null"`
	Date        Date            `gorm:"type:date;index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Type        TransactionType `gorm:"size:10;not null;default:EXPENSE"`
	CategoryID  *uint           `gorm:"index"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Description string          `gorm:"type:text;not null"`
}

// CategoryName returns the name of the preloaded category, if any.
func (t Transaction) CategoryName() *string {
	if t.Category == nil {
		return nil
	}
	name := t.Category.Name
	return &name
}
