package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}

func TestBuildAndWrite(t *testing.T) {
	db := newTestDB(t)
	user := &models.User{Username: "alice", HashedPassword: []byte("x")}
	seed(t, db, user)
	food := &models.Category{UserID: user.ID, Name: "Food"}
	seed(t, db, food)
	seed(t, db,
		&models.Budget{UserID: user.ID, Month: models.NewDate(2024, time.February, 1), Amount: decimal.NewFromInt(200)},
		&models.Budget{UserID: user.ID, Month: models.NewDate(2024, time.March, 1), Amount: decimal.NewFromInt(999)},
		&models.Transaction{UserID: user.ID, Date: models.NewDate(2024, time.February, 29), Amount: decimal.NewFromInt(50), Type: models.Expense, CategoryID: &food.ID, Description: "groceries"},
		&models.Transaction{UserID: user.ID, Date: models.NewDate(2024, time.February, 2), Amount: decimal.NewFromInt(20), Type: models.Expense, Description: "bus"},
		&models.Transaction{UserID: user.ID, Date: models.NewDate(2024, time.February, 15), Amount: decimal.NewFromInt(1000), Type: models.Income, CategoryID: &food.ID, Description: "salary"},
		&models.Transaction{UserID: user.ID, Date: models.NewDate(2024, time.March, 1), Amount: decimal.NewFromInt(70), Type: models.Expense},
	)

	r, err := Build(context.Background(), db, "alice", "2024-02", true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !r.Budgeted.Equal(decimal.NewFromInt(200)) || !r.Recorded.Equal(decimal.NewFromInt(70)) || !r.Remaining().Equal(decimal.NewFromInt(130)) {
		t.Fatalf("totals budgeted=%s recorded=%s", r.Budgeted, r.Recorded)
	}
	if len(r.Categories) != 2 || len(r.Transactions) != 3 {
		t.Fatalf("categories=%d transactions=%d", len(r.Categories), len(r.Transactions))
	}

	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"user=alice month=2024-02", "remaining=130.00", "Food", "(uncategorised)", "2024-02-29", "groceries", "salary"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	db := newTestDB(t)
	if _, err := Build(context.Background(), db, "alice", "2024-13", false); err == nil || !strings.Contains(err.Error(), "invalid month") {
		t.Fatalf("bad month: %v", err)
	}
	if _, err := Build(context.Background(), db, "ghost", "2024-02", false); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unknown user: %v", err)
	}
}
