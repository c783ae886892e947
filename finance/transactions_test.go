package finance

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"testing"

	"github.com/so637/personal-budget-tracker-backend/models"
)

func amounts(list []models.Transaction) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Amount.String())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListTransactionsFilters(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	uid := createUser(t, db, "alice")
	food := mustCategory(t, s, uid, "Food")
	travel := mustCategory(t, s, uid, "Travel")

	mustTransaction(t, s, uid, "2024-01-01", "10", "EXPENSE", &food.ID)
	mustTransaction(t, s, uid, "2024-01-15", "50", "EXPENSE", &travel.ID)
	mustTransaction(t, s, uid, "2024-02-01", "5", "INCOME", nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters newest first", "", []string{"5", "50", "10"}},
		{"january range", "date_from=2024-01-01&date_to=2024-01-31", []string{"50", "10"}},
		{"exact date", "date=2024-01-15", []string{"50"}},
		{"from only", "date_from=2024-01-15", []string{"5", "50"}},
		{"amount range inclusive", "amount_min=10&amount_max=50", []string{"50", "10"}},
		{"amount min", "amount_min=11", []string{"50"}},
		{"category", "category=" + itoa(food.ID), []string{"10"}},
		{"combined", "date_from=2024-01-01&amount_max=20&category=" + itoa(food.ID), []string{"10"}},
		{"empty params ignored", "date=&amount_min=&category=", []string{"5", "50", "10"}},
		{"nothing matches", "date=2023-12-31", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			f, err := ParseTransactionFilter(q)
			if err != nil {
				t.Fatalf("parse filter: %v", err)
			}
			list, err := s.ListTransactions(ctx, uid, f)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if got := amounts(list); !equal(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestParseTransactionFilterErrors(t *testing.T) {
	q, _ := url.ParseQuery("date=yesterday&date_from=2024-13-01&amount_min=ten&category=-1")
	_, err := ParseTransactionFilter(q)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, key := range []string{"date", "date_from", "amount_min", "category"} {
		if len(fe[key]) == 0 {
			t.Errorf("missing error for %s: %v", key, fe)
		}
	}
	if len(fe["date_to"]) != 0 {
		t.Errorf("unexpected date_to error: %v", fe)
	}
}

func TestTransactionCategoryName(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	uid := createUser(t, db, "alice")
	food := mustCategory(t, s, uid, "Food")

	tx := mustTransaction(t, s, uid, "2024-01-01", "12.50", "EXPENSE", &food.ID)
	if name := tx.CategoryName(); name == nil || *name != "Food" {
		t.Fatalf("category name = %v", name)
	}
	if tx.Type != models.Expense {
		t.Fatalf("type = %s", tx.Type)
	}

	// clearing the category with null
	got, err := s.UpdateTransaction(ctx, uid, tx.ID, TransactionInput{Category: raw(nil)}, true)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if got.CategoryID != nil || got.CategoryName() != nil {
		t.Fatalf("category not cleared: %+v", got)
	}
	if !got.Amount.Equal(dec("12.5")) || got.Date.String() != "2024-01-01" {
		t.Fatalf("patch touched other fields: %s %s", got.Amount, got.Date)
	}
}

func TestTransactionDefaultsAndValidation(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	uid := createUser(t, db, "alice")

	tx, err := s.CreateTransaction(ctx, uid, TransactionInput{Date: raw("2024-05-05"), Amount: raw(7)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.Type != models.Expense || tx.UserID != uid || tx.Description != "" {
		t.Fatalf("unexpected defaults: %+v", tx)
	}

	tests := []struct {
		name   string
		in     TransactionInput
		fields []string
	}{
		{"missing required", TransactionInput{}, []string{"date", "amount"}},
		{"bad date", TransactionInput{Date: raw("2024-02-30"), Amount: raw(1)}, []string{"date"}},
		{"bad amount", TransactionInput{Date: raw("2024-02-01"), Amount: raw("abc")}, []string{"amount"}},
		{"too precise", TransactionInput{Date: raw("2024-02-01"), Amount: raw("1.001")}, []string{"amount"}},
		{"too large", TransactionInput{Date: raw("2024-02-01"), Amount: raw("10000000000")}, []string{"amount"}},
		{"bad type", TransactionInput{Date: raw("2024-02-01"), Amount: raw(1), Type: raw("GIFT")}, []string{"type"}},
		{"unknown category", TransactionInput{Date: raw("2024-02-01"), Amount: raw(1), Category: raw(999)}, []string{"category"}},
		{"category wrong type", TransactionInput{Date: raw("2024-02-01"), Amount: raw(1), Category: raw("food")}, []string{"category"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateTransaction(ctx, uid, tt.in)
			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			for _, f := range tt.fields {
				if len(fe[f]) == 0 {
					t.Errorf("missing error for %s: %v", f, fe)
				}
			}
		})
	}
}
