package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/middleware"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// KindBalanceResponse represents one account kind's aggregate balance
type KindBalanceResponse struct {
	Kind    string `json:"kind"`
	Balance string `json:"balance"`
	Count   int    `json:"count"`
}

// DashboardSummaryResponse represents the dashboard summary in API responses
type DashboardSummaryResponse struct {
	TotalBalance     string                `json:"totalBalance"`
	BalancesByKind   []KindBalanceResponse `json:"balancesByKind"`
	TotalOutstanding string                `json:"totalOutstanding"`
	ActiveLoanCount  int64                 `json:"activeLoanCount"`
	PaidLoanCount    int64                 `json:"paidLoanCount"`
	CurrentMonth     PeriodTotalsResponse  `json:"currentMonth"`
}

func toDashboardSummaryResponse(summary *domain.DashboardSummary) DashboardSummaryResponse {
	balances := make([]KindBalanceResponse, len(summary.BalancesByKind))
	for i, kb := range summary.BalancesByKind {
		balances[i] = KindBalanceResponse{
			Kind:    string(kb.Kind),
			Balance: kb.Balance.StringFixed(2),
			Count:   int(kb.Count),
		}
	}
	return DashboardSummaryResponse{
		TotalBalance:     summary.TotalBalance.StringFixed(2),
		BalancesByKind:   balances,
		TotalOutstanding: summary.TotalOutstanding.StringFixed(2),
		ActiveLoanCount:  summary.ActiveLoanCount,
		PaidLoanCount:    summary.PaidLoanCount,
		CurrentMonth:     toPeriodTotalsResponse(summary.CurrentMonth),
	}
}

// GetSummary handles GET /dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.dashboardService.GetSummary(ownerID)
	if err != nil {
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}
