package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	accountHandler *AccountHandler,
	transactionHandler *TransactionHandler,
	loanHandler *LoanHandler,
	reportHandler *ReportHandler,
	dashboardHandler *DashboardHandler,
	statementHandler *StatementHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)

	// Account routes
	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.POST("/:id/deactivate", accountHandler.DeactivateAccount)
	accounts.POST("/:id/reactivate", accountHandler.ReactivateAccount)

	// Transaction routes; POST is the only write path into the ledger
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CommitTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)

	// Loan routes
	loans := api.Group("/loans")
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.GET("/:id/statement", loanHandler.GetLoanStatement)
	loans.POST("/:id/default", loanHandler.MarkDefaulted)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/monthly/:year", reportHandler.GetMonthlyReports)
	reports.GET("/monthly/:year/:month", reportHandler.GetMonthlyReport)
	reports.GET("/yearly", reportHandler.GetYearlyReports)
	reports.GET("/yearly/:year", reportHandler.GetYearlyReport)
	reports.POST("/recalculate", reportHandler.Recalculate)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// Statement export routes
	statements := api.Group("/statements")
	statements.POST("/:year/:month", statementHandler.ExportMonth)
}
