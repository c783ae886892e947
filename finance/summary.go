package finance

import (
	"context"
	"strings"

	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one row of the per-category spending summary.
type CategoryTotal struct {
	CategoryName *string         `json:"category__name" gorm:"column:category_name"`
	TotalSpent   decimal.Decimal `json:"total_spent" gorm:"column:total_spent"`
}

// PeriodCategoryTotal is one row of the budget period summary.
type PeriodCategoryTotal struct {
	CategoryID   *uint           `json:"category__id" gorm:"column:category_id"`
	CategoryName *string         `json:"category__name" gorm:"column:category_name"`
	TotalSpent   decimal.Decimal `json:"total_spent" gorm:"column:total_spent"`
}

type TransactionOverview struct {
	TotalIncome  decimal.Decimal `json:"total_income" gorm:"column:total_income"`
	TotalExpense decimal.Decimal `json:"total_expense" gorm:"column:total_expense"`
	Balance      decimal.Decimal `json:"balance" gorm:"-"`
}

type BudgetOverview struct {
	TotalBudget decimal.Decimal `json:"total_budget"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// PeriodQuery selects the transactions of a budget period summary.
// A Month that is empty or does not parse disables the date bound.
type PeriodQuery struct {
	Month      string
	CategoryID *uint
}

// Interval returns the half-open [first of month, first of next month) range
// named by q.Month.
func (q PeriodQuery) Interval() (start, end models.Date, ok bool) {
	if strings.TrimSpace(q.Month) == "" {
		return models.Date{}, models.Date{}, false
	}
	start, err := models.ParseMonth(q.Month)
	if err != nil {
		return models.Date{}, models.Date{}, false
	}
	return start, start.NextMonth(), true
}

// CategorySummary sums all of the user's transactions per category name,
// largest total first. Uncategorised rows share a nil name.
func (s *Store) CategorySummary(ctx context.Context, userID uint) ([]CategoryTotal, error) {
	out := make([]CategoryTotal, 0)
	err := s.db.WithContext(ctx).Table("transactions").
		Select("categories.name AS category_name, SUM(transactions.amount) AS total_spent").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Group("categories.name").
		Order("total_spent DESC").
		Scan(&out).Error
	return out, storeErr("category summary", err)
}

// BudgetPeriodSummary sums the user's transactions per category within the
// month of q, optionally for a single category, largest total first. A full
// date in q.Month is widened to its whole month, so "2024-02-15" covers
// [2024-02-01, 2024-03-01).
func (s *Store) BudgetPeriodSummary(ctx context.Context, userID uint, q PeriodQuery) ([]PeriodCategoryTotal, error) {
	tx := s.db.WithContext(ctx).Table("transactions").
		Select("categories.id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total_spent").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID)
	if start, end, ok := q.Interval(); ok {
		tx = tx.Where("transactions.date >= ? AND transactions.date < ?", start, end)
	}
	if q.CategoryID != nil {
		tx = tx.Where("transactions.category_id = ?", *q.CategoryID)
	}
	out := make([]PeriodCategoryTotal, 0)
	err := tx.Group("categories.id, categories.name").Order("total_spent DESC").Scan(&out).Error
	return out, storeErr("budget period summary", err)
}

// ExpenseTotal sums the user's EXPENSE transactions dated in [from, to).
func (s *Store) ExpenseTotal(ctx context.Context, userID uint, from, to models.Date) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := s.scoped(ctx, userID).Model(&models.Transaction{}).
		Where("type = ? AND date >= ? AND date < ?", string(models.Expense), from, to).
		Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	if err != nil {
		return decimal.Zero, storeErr("expense total", err)
	}
	return row.Total, nil
}

// TransactionOverview totals income and expense over all of the user's transactions.
func (s *Store) TransactionOverview(ctx context.Context, userID uint) (TransactionOverview, error) {
	var ov TransactionOverview
	err := s.scoped(ctx, userID).Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income, "+
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense",
			string(models.Income), string(models.Expense)).
		Scan(&ov).Error
	if err != nil {
		return TransactionOverview{}, storeErr("transaction overview", err)
	}
	ov.Balance = ov.TotalIncome.Sub(ov.TotalExpense)
	return ov, nil
}

// BudgetOverview compares everything the user budgeted with everything spent.
func (s *Store) BudgetOverview(ctx context.Context, userID uint) (BudgetOverview, error) {
	var ov BudgetOverview
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := s.scoped(ctx, userID).Model(&models.Budget{}).
		Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	if err != nil {
		return BudgetOverview{}, storeErr("budget overview", err)
	}
	ov.TotalBudget = row.Total
	err = s.scoped(ctx, userID).Model(&models.Transaction{}).
		Where("type = ?", string(models.Expense)).
		Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	if err != nil {
		return BudgetOverview{}, storeErr("budget overview", err)
	}
	ov.TotalSpent = row.Total
	ov.Remaining = ov.TotalBudget.Sub(ov.TotalSpent)
	return ov, nil
}
