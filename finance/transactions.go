package finance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxAmount bounds numeric(12,2).
var maxAmount = decimal.New(1, 10)

// TransactionInput is a transaction write payload. Owner fields sent by the
// client are not part of it and are never read.
type TransactionInput struct {
	Date        json.RawMessage `json:"date"`
	Amount      json.RawMessage `json:"amount"`
	Type        json.RawMessage `json:"type"`
	Category    json.RawMessage `json:"category"`
	Description json.RawMessage `json:"description"`
}

func (in TransactionInput) apply(t *models.Transaction, partial bool) FieldErrors {
	fe := FieldErrors{}
	required := func(field string, raw json.RawMessage) bool {
		switch {
		case raw == nil:
			if !partial {
				fe.Add(field, "This field is required.")
			}
			return false
		case isNull(raw):
			fe.Add(field, "This field may not be null.")
			return false
		}
		return true
	}

	if required("date", in.Date) {
		fe.decodeField("date", in.Date, &t.Date)
	}
	if required("amount", in.Amount) {
		var amount decimal.Decimal
		if fe.decodeField("amount", in.Amount, &amount) {
			fe.checkAmount("amount", amount)
			t.Amount = amount
		}
	}
	if in.Type != nil && !isNull(in.Type) {
		var typ string
		if fe.decodeField("type", in.Type, &typ) {
			fe.check("type", typ, "oneof=INCOME EXPENSE")
			t.Type = models.TransactionType(typ)
		}
	} else if in.Type != nil {
		fe.Add("type", "This field may not be null.")
	}
	if in.Category != nil {
		if isNull(in.Category) {
			t.CategoryID = nil
			t.Category = nil
		} else {
			var id uint
			if fe.decodeField("category", in.Category, &id) {
				t.CategoryID = &id
				t.Category = nil
			}
		}
	} else if !partial {
		t.CategoryID = nil
		t.Category = nil
	}
	if in.Description != nil && !isNull(in.Description) {
		var desc string
		if fe.decodeField("description", in.Description, &desc) {
			t.Description = desc
		}
	} else if !partial {
		t.Description = ""
	}
	if t.Type == "" {
		t.Type = models.Expense
	}
	return fe
}

func (fe FieldErrors) checkAmount(field string, d decimal.Decimal) {
	if !d.Equal(d.Round(2)) {
		fe.Add(field, "Ensure that there are no more than 2 decimal places.")
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		fe.Add(field, "Ensure that there are no more than 12 digits in total.")
	}
}

// checkCategory flags a category reference the user does not own. Such ids
// are reported exactly like ids that do not exist.
func (s *Store) checkCategory(ctx context.Context, userID uint, t *models.Transaction, fe FieldErrors) error {
	if t.CategoryID == nil {
		return nil
	}
	var n int64
	err := s.scoped(ctx, userID).Model(&models.Category{}).Where("id = ?", *t.CategoryID).Count(&n).Error
	if err != nil {
		return storeErr("check category", err)
	}
	if n == 0 {
		fe.Add("category", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *t.CategoryID))
	}
	return nil
}

func (s *Store) transactions(ctx context.Context, userID uint) *gorm.DB {
	return s.scoped(ctx, userID).Model(&models.Transaction{}).Preload("Category")
}

// ListTransactions returns the user's transactions matching f, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID uint, f TransactionFilter) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	err := s.transactions(ctx, userID).
		Scopes(f.Scopes()...).
		Order(clause.OrderByColumn{Column: column("date"), Desc: true}).
		Order(clause.OrderByColumn{Column: column("id"), Desc: true}).
		Find(&out).Error
	return out, storeErr("list transactions", err)
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.transactions(ctx, userID).First(&t, id).Error; err != nil {
		return nil, storeErr("get transaction", err)
	}
	return &t, nil
}

// CreateTransaction stores a transaction owned by userID. Type defaults to EXPENSE.
func (s *Store) CreateTransaction(ctx context.Context, userID uint, in TransactionInput) (*models.Transaction, error) {
	t := models.Transaction{UserID: userID}
	fe := in.apply(&t, false)
	if err := s.checkCategory(ctx, userID, &t, fe); err != nil {
		return nil, err
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&t).Error; err != nil {
		return nil, storeErr("create transaction", err)
	}
	return s.GetTransaction(ctx, userID, t.ID)
}

// UpdateTransaction replaces (partial=false) or patches a transaction.
func (s *Store) UpdateTransaction(ctx context.Context, userID, id uint, in TransactionInput, partial bool) (*models.Transaction, error) {
	t, err := s.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	fe := in.apply(t, partial)
	if err := s.checkCategory(ctx, userID, t, fe); err != nil {
		return nil, err
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}
	err = s.scoped(ctx, userID).Model(t).Omit(clause.Associations).
		Select("date", "amount", "type", "category_id", "description").
		Updates(t).Error
	if err != nil {
		return nil, storeErr("update transaction", err)
	}
	return s.GetTransaction(ctx, userID, id)
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uint) error {
	return s.deleteOwned(ctx, userID, id, &models.Transaction{}, "delete transaction")
}
