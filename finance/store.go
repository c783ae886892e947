// Package finance holds the owner-scoped queries behind the budget tracker API.
// Every call takes the authenticated user's id explicitly; rows belonging to
// anyone else behave as if they did not exist.
package finance

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store runs category, transaction and budget queries against a gorm database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ownedBy restricts a query to rows of the statement's table owned by userID.
func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "user_id"},
			Value:  userID,
		})
	}
}

func (s *Store) scoped(ctx context.Context, userID uint) *gorm.DB {
	return s.db.WithContext(ctx).Scopes(ownedBy(userID))
}

// deleteOwned removes the row with id of model's table if userID owns it.
func (s *Store) deleteOwned(ctx context.Context, userID, id uint, model any, op string) error {
	res := s.scoped(ctx, userID).Delete(model, id)
	if res.Error != nil {
		return storeErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
