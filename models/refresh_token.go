package models

import "time"

// RefreshToken is a login session. Only the SHA-256 of the token handed to
// the client is kept.
type RefreshToken struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UserID     uint       `gorm:"index;not null"`
	TokenHash  string     `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt  time.Time  `gorm:"index;not null"`
	RevokedAt  *time.Time `gorm:"index"`
	LastUsedAt *time.Time
}

// Usable reports whether the session can still mint access tokens at now.
func (rt RefreshToken) Usable(now time.Time) bool {
	return rt.RevokedAt == nil && now.Before(rt.ExpiresAt)
}
