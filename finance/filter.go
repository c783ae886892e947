package finance

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionFilter narrows a transaction listing. Nil fields are not applied;
// the others combine with AND.
type TransactionFilter struct {
	Date       *models.Date
	DateFrom   *models.Date
	DateTo     *models.Date
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	CategoryID *uint
}

// ParseTransactionFilter reads the filter from query parameters. Empty
// parameters are ignored; malformed ones are reported as FieldErrors.
func ParseTransactionFilter(q url.Values) (TransactionFilter, error) {
	var f TransactionFilter
	fe := FieldErrors{}
	f.Date = parseDateParam(fe, q, "date")
	f.DateFrom = parseDateParam(fe, q, "date_from")
	f.DateTo = parseDateParam(fe, q, "date_to")
	f.AmountMin = parseAmountParam(fe, q, "amount_min")
	f.AmountMax = parseAmountParam(fe, q, "amount_max")
	f.CategoryID = parseIDParam(fe, q, "category")
	return f, fe.Err()
}

func parseDateParam(fe FieldErrors, q url.Values, key string) *models.Date {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		fe.Add(key, "Enter a valid date in YYYY-MM-DD format.")
		return nil
	}
	return &d
}

func parseAmountParam(fe FieldErrors, q url.Values, key string) *decimal.Decimal {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		fe.Add(key, "A valid number is required.")
		return nil
	}
	return &d
}

func parseIDParam(fe FieldErrors, q url.Values, key string) *uint {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		fe.Add(key, "A valid integer is required.")
		return nil
	}
	u := uint(id)
	return &u
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

func where(expr clause.Expression) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where(expr) }
}

// Scopes returns one independent scope per set field.
func (f TransactionFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if f.Date != nil {
		scopes = append(scopes, where(clause.Eq{Column: column("date"), Value: *f.Date}))
	}
	if f.DateFrom != nil {
		scopes = append(scopes, where(clause.Gte{Column: column("date"), Value: *f.DateFrom}))
	}
	if f.DateTo != nil {
		scopes = append(scopes, where(clause.Lte{Column: column("date"), Value: *f.DateTo}))
	}
	if f.AmountMin != nil {
		scopes = append(scopes, where(clause.Gte{Column: column("amount"), Value: *f.AmountMin}))
	}
	if f.AmountMax != nil {
		scopes = append(scopes, where(clause.Lte{Column: column("amount"), Value: *f.AmountMax}))
	}
	if f.CategoryID != nil {
		scopes = append(scopes, where(clause.Eq{Column: column("category_id"), Value: *f.CategoryID}))
	}
	return scopes
}
