package main

import (
	"net/http"
	"strconv"

	"github.com/so637/personal-budget-tracker-backend/finance"
	"github.com/so637/personal-budget-tracker-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type categoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newCategoryResponse(c models.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

type transactionResponse struct {
	ID           uint                   `json:"id"`
	Date         models.Date            `json:"date"`
	Amount       decimal.Decimal        `json:"amount"`
	Type         models.TransactionType `json:"type"`
	Category     *uint                  `json:"category"`
	CategoryName *string                `json:"category_name"`
	Description  string                 `json:"description"`
}

func newTransactionResponse(t models.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		Date:         t.Date,
		Amount:       t.Amount,
		Type:         t.Type,
		Category:     t.CategoryID,
		CategoryName: t.CategoryName(),
		Description:  t.Description,
	}
}

type budgetResponse struct {
	ID     uint            `json:"id"`
	Month  models.Date     `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func newBudgetResponse(b models.Budget) budgetResponse {
	return budgetResponse{ID: b.ID, Month: b.Month, Amount: b.Amount}
}

// Categories

func (s *server) listCategoriesHandler(c *gin.Context) {
	items, err := s.store.ListCategories(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newCategoryResponse(it))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createCategoryHandler(c *gin.Context) {
	var in finance.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := s.store.CreateCategory(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCategoryResponse(*cat))
}

func (s *server) getCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := s.store.GetCategory(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(*cat))
}

func (s *server) updateCategoryHandler(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var in finance.CategoryInput
		if !bindJSON(c, &in) {
			return
		}
		cat, err := s.store.UpdateCategory(c.Request.Context(), currentUserID(c), id, in, partial)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newCategoryResponse(*cat))
	}
}

func (s *server) deleteCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteCategory(c.Request.Context(), currentUserID(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Transactions

func (s *server) listTransactionsHandler(c *gin.Context) {
	filter, err := finance.ParseTransactionFilter(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	items, err := s.store.ListTransactions(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]transactionResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newTransactionResponse(it))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createTransactionHandler(c *gin.Context) {
	var in finance.TransactionInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := s.store.CreateTransaction(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTransactionResponse(*t))
}

func (s *server) getTransactionHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := s.store.GetTransaction(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(*t))
}

func (s *server) updateTransactionHandler(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var in finance.TransactionInput
		if !bindJSON(c, &in) {
			return
		}
		t, err := s.store.UpdateTransaction(c.Request.Context(), currentUserID(c), id, in, partial)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newTransactionResponse(*t))
	}
}

func (s *server) deleteTransactionHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteTransaction(c.Request.Context(), currentUserID(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) categorySummaryHandler(c *gin.Context) {
	rows, err := s.store.CategorySummary(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *server) transactionOverviewHandler(c *gin.Context) {
	ov, err := s.store.TransactionOverview(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// Budgets

func (s *server) listBudgetsHandler(c *gin.Context) {
	items, err := s.store.ListBudgets(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]budgetResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newBudgetResponse(it))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createBudgetHandler(c *gin.Context) {
	var in finance.BudgetInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := s.store.CreateBudget(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBudgetResponse(*b))
}

func (s *server) getBudgetHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := s.store.GetBudget(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newBudgetResponse(*b))
}

func (s *server) updateBudgetHandler(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var in finance.BudgetInput
		if !bindJSON(c, &in) {
			return
		}
		b, err := s.store.UpdateBudget(c.Request.Context(), currentUserID(c), id, in, partial)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newBudgetResponse(*b))
	}
}

func (s *server) deleteBudgetHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteBudget(c.Request.Context(), currentUserID(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// budgetSummaryHandler reads ?month= (YYYY-MM or YYYY-MM-DD) and ?category=.
// A month that does not parse leaves the period unbounded.
func (s *server) budgetSummaryHandler(c *gin.Context) {
	q := finance.PeriodQuery{Month: c.Query("month")}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			fields := finance.FieldErrors{}
			fields.Add("category", "A valid integer is required.")
			validationFailed(c, fields)
			return
		}
		cid := uint(id)
		q.CategoryID = &cid
	}
	rows, err := s.store.BudgetPeriodSummary(c.Request.Context(), currentUserID(c), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *server) budgetOverviewHandler(c *gin.Context) {
	ov, err := s.store.BudgetOverview(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}
