package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/middleware"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PeriodTotalsResponse represents the four aggregate sums in API responses
type PeriodTotalsResponse struct {
	TotalDisbursed string `json:"totalDisbursed"`
	TotalCollected string `json:"totalCollected"`
	TotalIncome    string `json:"totalIncome"`
	TotalExpenses  string `json:"totalExpenses"`
}

func toPeriodTotalsResponse(totals domain.PeriodTotals) PeriodTotalsResponse {
	return PeriodTotalsResponse{
		TotalDisbursed: totals.TotalDisbursed.StringFixed(2),
		TotalCollected: totals.TotalCollected.StringFixed(2),
		TotalIncome:    totals.TotalIncome.StringFixed(2),
		TotalExpenses:  totals.TotalExpenses.StringFixed(2),
	}
}

// MonthlyReportResponse represents a monthly report in API responses
type MonthlyReportResponse struct {
	ID      int32 `json:"id"`
	OwnerID int32 `json:"ownerId"`
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	PeriodTotalsResponse
	UpdatedAt string `json:"updatedAt"`
}

// YearlyReportResponse represents a yearly report in API responses
type YearlyReportResponse struct {
	ID      int32 `json:"id"`
	OwnerID int32 `json:"ownerId"`
	Year    int   `json:"year"`
	PeriodTotalsResponse
	UpdatedAt string `json:"updatedAt"`
}

func toMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		ID:                   r.ID,
		OwnerID:              r.OwnerID,
		Year:                 r.Year,
		Month:                r.Month,
		PeriodTotalsResponse: toPeriodTotalsResponse(r.PeriodTotals),
		UpdatedAt:            r.UpdatedAt.Format(time.RFC3339),
	}
}

func toYearlyReportResponse(r *domain.YearlyReport) YearlyReportResponse {
	return YearlyReportResponse{
		ID:                   r.ID,
		OwnerID:              r.OwnerID,
		Year:                 r.Year,
		PeriodTotalsResponse: toPeriodTotalsResponse(r.PeriodTotals),
		UpdatedAt:            r.UpdatedAt.Format(time.RFC3339),
	}
}

func parsePeriodParams(c echo.Context, withMonth bool) (year, month int, err error) {
	var y int32
	if ok, perr := parseIntParam(c.Param("year"), &y); !ok || perr != nil {
		return 0, 0, errors.New("invalid year")
	}
	if !withMonth {
		return int(y), 0, nil
	}
	var m int32
	if ok, perr := parseIntParam(c.Param("month"), &m); !ok || perr != nil {
		return 0, 0, errors.New("invalid month")
	}
	return int(y), int(m), nil
}

// GetMonthlyReport handles GET /reports/monthly/:year/:month
func (h *ReportHandler) GetMonthlyReport(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, month, err := parsePeriodParams(c, true)
	if err != nil {
		return NewValidationError(c, "Invalid period", nil)
	}

	report, err := h.reportService.GetMonthly(ownerID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		if errors.Is(err, domain.ErrReportNotFound) {
			return NewNotFoundError(c, "Report not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get monthly report")
		return NewInternalError(c, "Failed to get monthly report")
	}

	return c.JSON(http.StatusOK, toMonthlyReportResponse(report))
}

// GetMonthlyReports handles GET /reports/monthly/:year
func (h *ReportHandler) GetMonthlyReports(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, _, err := parsePeriodParams(c, false)
	if err != nil {
		return NewValidationError(c, "Invalid period", nil)
	}

	reports, err := h.reportService.GetMonthlyByYear(ownerID, year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get monthly reports")
		return NewInternalError(c, "Failed to get monthly reports")
	}

	resp := make([]MonthlyReportResponse, len(reports))
	for i, r := range reports {
		resp[i] = toMonthlyReportResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetYearlyReport handles GET /reports/yearly/:year
func (h *ReportHandler) GetYearlyReport(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, _, err := parsePeriodParams(c, false)
	if err != nil {
		return NewValidationError(c, "Invalid period", nil)
	}

	report, err := h.reportService.GetYearly(ownerID, year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		if errors.Is(err, domain.ErrReportNotFound) {
			return NewNotFoundError(c, "Report not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get yearly report")
		return NewInternalError(c, "Failed to get yearly report")
	}

	return c.JSON(http.StatusOK, toYearlyReportResponse(report))
}

// GetYearlyReports handles GET /reports/yearly
func (h *ReportHandler) GetYearlyReports(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	reports, err := h.reportService.GetAllYearly(ownerID)
	if err != nil {
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get yearly reports")
		return NewInternalError(c, "Failed to get yearly reports")
	}

	resp := make([]YearlyReportResponse, len(reports))
	for i, r := range reports {
		resp[i] = toYearlyReportResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// Recalculate handles POST /reports/recalculate. It rebuilds the caller's
// reports from the full transaction history.
func (h *ReportHandler) Recalculate(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.reportService.Recalculate(c.Request().Context(), &ownerID); err != nil {
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to recalculate reports")
		return NewInternalError(c, "Failed to recalculate reports")
	}

	log.Info().Int32("owner_id", ownerID).Msg("Reports recalculated")

	return c.NoContent(http.StatusNoContent)
}
