package models

import "time"

// Category groups transactions. Visible only to its owner.
type Category struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:100;not null"`
}
