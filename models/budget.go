package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the amount a user plans to spend in a month. Month is always the 1st.
type Budget struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint            `gorm:"index;not null"`
	Month     Date            `gorm:"type:date;index;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}
