package main

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/so637/personal-budget-tracker-backend/auth"
	"github.com/so637/personal-budget-tracker-backend/finance"
	"github.com/so637/personal-budget-tracker-backend/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type server struct {
	db            *gorm.DB
	store         *finance.Store
	auth          *auth.Service
	log           *slog.Logger
	allowTestUser bool
}

func newServer(db *gorm.DB, authSvc *auth.Service, log *slog.Logger, allowTestUser bool) *server {
	return &server{
		db:            db,
		store:         finance.NewStore(db),
		auth:          authSvc,
		log:           log,
		allowTestUser: allowTestUser,
	}
}

var registerFieldNames sync.Once

// useJSONFieldNames makes gin's validator report fields by their json tag.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func newRouter(s *server) *gin.Engine {
	useJSONFieldNames()
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.Access(s.log, currentUserID))
	setupRoutes(r, s)
	return r
}

func setupRoutes(r *gin.Engine, s *server) {
	r.GET("/healthz", s.healthHandler)
	if s.allowTestUser {
		r.POST("/create-test-user/", s.createTestUserHandler)
	}

	token := r.Group("/api/token")
	token.POST("/", s.tokenHandler)
	token.POST("/refresh/", s.refreshHandler)
	token.POST("/revoke/", s.revokeHandler)

	api := r.Group("/api")
	api.Use(s.auth.Middleware())

	api.GET("/categories/", s.listCategoriesHandler)
	api.POST("/categories/", s.createCategoryHandler)
	api.GET("/categories/:id/", s.getCategoryHandler)
	api.PUT("/categories/:id/", s.updateCategoryHandler(false))
	api.PATCH("/categories/:id/", s.updateCategoryHandler(true))
	api.DELETE("/categories/:id/", s.deleteCategoryHandler)

	api.GET("/transactions/", s.listTransactionsHandler)
	api.POST("/transactions/", s.createTransactionHandler)
	api.GET("/transactions/summary/", s.categorySummaryHandler)
	api.GET("/transactions/global-summary/", s.transactionOverviewHandler)
	api.GET("/transactions/:id/", s.getTransactionHandler)
	api.PUT("/transactions/:id/", s.updateTransactionHandler(false))
	api.PATCH("/transactions/:id/", s.updateTransactionHandler(true))
	api.DELETE("/transactions/:id/", s.deleteTransactionHandler)

	api.GET("/budgets/", s.listBudgetsHandler)
	api.POST("/budgets/", s.createBudgetHandler)
	api.GET("/budgets/summary/", s.budgetSummaryHandler)
	api.GET("/budgets/global-summary/", s.budgetOverviewHandler)
	api.GET("/budgets/:id/", s.getBudgetHandler)
	api.PUT("/budgets/:id/", s.updateBudgetHandler(false))
	api.PATCH("/budgets/:id/", s.updateBudgetHandler(true))
	api.DELETE("/budgets/:id/", s.deleteBudgetHandler)
}
