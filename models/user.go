package models

import (
	"time"
)

// User owns categories, transactions and budgets. Rows are removed with the user.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string         `gorm:"size:150;not null;uniqueIndex"`
	HashedPassword []byte         `gorm:"not null"`
	Categories     []Category     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Transactions   []Transaction  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Budgets        []Budget       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RefreshTokens  []RefreshToken `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
