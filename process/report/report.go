package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/so637/personal-budget-tracker-backend/finance"
	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Report compares a user's budget for one month with what was spent.
// Recorded counts EXPENSE transactions only; Categories lists every row.
type Report struct {
	Username     string
	Month        models.Date
	Budgeted     decimal.Decimal
	Recorded     decimal.Decimal
	Categories   []finance.PeriodCategoryTotal
	Transactions []models.Transaction
}

// Remaining is the budget left after the month's expenses.
func (r *Report) Remaining() decimal.Decimal {
	return r.Budgeted.Sub(r.Recorded)
}

// Build loads the report for username. month is YYYY-MM or YYYY-MM-DD.
// Transactions are only loaded when list is set.
func Build(ctx context.Context, db *gorm.DB, username, month string, list bool) (*Report, error) {
	start, err := models.ParseMonth(month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	var user models.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q not found", username)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	store := finance.NewStore(db)
	r := &Report{Username: user.Username, Month: start}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		budgets, err := store.ListBudgets(gctx, user.ID)
		if err != nil {
			return err
		}
		for _, b := range budgets {
			if b.Month.Equal(start.Time) {
				r.Budgeted = r.Budgeted.Add(b.Amount)
			}
		}
		return nil
	})
	g.Go(func() error {
		rows, err := store.BudgetPeriodSummary(gctx, user.ID, finance.PeriodQuery{Month: start.String()})
		if err != nil {
			return err
		}
		r.Categories = rows
		return nil
	})
	g.Go(func() error {
		spent, err := store.ExpenseTotal(gctx, user.ID, start, start.NextMonth())
		if err != nil {
			return err
		}
		r.Recorded = spent
		return nil
	})
	if list {
		g.Go(func() error {
			from := start
			to := models.Date{Time: start.NextMonth().AddDate(0, 0, -1)}
			txs, err := store.ListTransactions(gctx, user.ID, finance.TransactionFilter{DateFrom: &from, DateTo: &to})
			if err != nil {
				return err
			}
			r.Transactions = txs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// Write renders r as aligned text.
func Write(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "Report for user=%s month=%s\n", r.Username, r.Month.Format("2006-01"))
	fmt.Fprintf(w, "  budgeted=%s recorded=%s remaining=%s\n",
		r.Budgeted.StringFixed(2), r.Recorded.StringFixed(2), r.Remaining().StringFixed(2))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nCATEGORY\tTOTAL")
	for _, row := range r.Categories {
		name := "(uncategorised)"
		if row.CategoryName != nil {
			name = *row.CategoryName
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, row.TotalSpent.StringFixed(2))
	}
	if len(r.Transactions) > 0 {
		fmt.Fprintln(tw, "\nID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
		for _, t := range r.Transactions {
			category := ""
			if name := t.CategoryName(); name != nil {
				category = *name
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Type, t.Amount.StringFixed(2), category, t.Description)
		}
	}
	return tw.Flush()
}
