package finance

import (
	"context"
	"encoding/json"

	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// BudgetInput is a budget write payload. Month accepts "YYYY-MM" or a full
// date and is stored as the first day of that month.
type BudgetInput struct {
	Month  json.RawMessage `json:"month"`
	Amount json.RawMessage `json:"amount"`
}

func (in BudgetInput) apply(b *models.Budget, partial bool) error {
	fe := FieldErrors{}
	switch {
	case in.Month == nil:
		if !partial {
			fe.Add("month", "This field is required.")
		}
	case isNull(in.Month):
		fe.Add("month", "This field may not be null.")
	default:
		var raw string
		if fe.decodeField("month", in.Month, &raw) {
			if m, err := models.ParseMonth(raw); err != nil {
				fe.Add("month", "Enter a valid month in YYYY-MM or YYYY-MM-DD format.")
			} else {
				b.Month = m
			}
		}
	}
	switch {
	case in.Amount == nil:
		if !partial {
			fe.Add("amount", "This field is required.")
		}
	case isNull(in.Amount):
		fe.Add("amount", "This field may not be null.")
	default:
		var amount decimal.Decimal
		if fe.decodeField("amount", in.Amount, &amount) {
			fe.checkAmount("amount", amount)
			b.Amount = amount
		}
	}
	return fe.Err()
}

func (s *Store) ListBudgets(ctx context.Context, userID uint) ([]models.Budget, error) {
	out := make([]models.Budget, 0)
	err := s.scoped(ctx, userID).Order("id").Find(&out).Error
	return out, storeErr("list budgets", err)
}

func (s *Store) GetBudget(ctx context.Context, userID, id uint) (*models.Budget, error) {
	var b models.Budget
	if err := s.scoped(ctx, userID).First(&b, id).Error; err != nil {
		return nil, storeErr("get budget", err)
	}
	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, userID uint, in BudgetInput) (*models.Budget, error) {
	b := models.Budget{UserID: userID}
	if err := in.apply(&b, false); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, storeErr("create budget", err)
	}
	return &b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, userID, id uint, in BudgetInput, partial bool) (*models.Budget, error) {
	b, err := s.GetBudget(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(b, partial); err != nil {
		return nil, err
	}
	err = s.scoped(ctx, userID).Model(b).Omit(clause.Associations).Select("month", "amount").Updates(b).Error
	if err != nil {
		return nil, storeErr("update budget", err)
	}
	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id uint) error {
	return s.deleteOwned(ctx, userID, id, &models.Budget{}, "delete budget")
}
