package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/oseko/lendbook-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newReportHandler(ledger *testutil.MemoryLedger) *ReportHandler {
	reportService := service.NewReportService(ledger, testutil.NewMemoryReportRepository(ledger))
	return NewReportHandler(reportService)
}

// Commits a march income and an april expense for owner 1.
func seedReportHistory(t *testing.T, ledger *testutil.MemoryLedger) {
	t.Helper()
	svc := service.NewLedgerService(ledger)
	account := seedCashAccount(ledger, 1, "1000.00")

	march := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(100),
		ToAccountID: &account.ID,
		OccurredOn:  &march,
	})
	if err != nil {
		t.Fatalf("Failed to seed income: %v", err)
	}

	april := time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC)
	_, err = svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.NewFromInt(40),
		FromAccountID: &account.ID,
		OccurredOn:    &april,
	})
	if err != nil {
		t.Fatalf("Failed to seed expense: %v", err)
	}
}

func TestGetMonthlyReport_Success(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)
	seedReportHistory(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2026/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "3")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetMonthlyReport(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response MonthlyReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Year != 2026 || response.Month != 3 {
		t.Errorf("Expected period 2026-03, got %d-%d", response.Year, response.Month)
	}

	if response.TotalIncome != "100.00" {
		t.Errorf("Expected totalIncome '100.00', got %s", response.TotalIncome)
	}

	if response.TotalExpenses != "0.00" {
		t.Errorf("Expected totalExpenses '0.00', got %s", response.TotalExpenses)
	}
}

func TestGetMonthlyReport_NotFound(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2026/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "3")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetMonthlyReport(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetMonthlyReport_InvalidMonth(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2026/13", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "13")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetMonthlyReport(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetMonthlyReports_Year(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)
	seedReportHistory(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2026", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year")
	c.SetParamValues("2026")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetMonthlyReports(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []MonthlyReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 2 {
		t.Fatalf("Expected 2 monthly reports, got %d", len(response))
	}

	if response[0].Month != 3 || response[1].Month != 4 {
		t.Errorf("Expected reports ordered by month, got %d then %d", response[0].Month, response[1].Month)
	}
}

func TestGetYearlyReport_Success(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)
	seedReportHistory(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/yearly/2026", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year")
	c.SetParamValues("2026")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetYearlyReport(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response YearlyReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalIncome != "100.00" {
		t.Errorf("Expected totalIncome '100.00', got %s", response.TotalIncome)
	}

	if response.TotalExpenses != "40.00" {
		t.Errorf("Expected totalExpenses '40.00', got %s", response.TotalExpenses)
	}
}

func TestGetYearlyReports_All(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)
	seedReportHistory(t, ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/yearly", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetYearlyReports(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []YearlyReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Errorf("Expected 1 yearly report, got %d", len(response))
	}
}

func TestRecalculate_RebuildsReports(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newReportHandler(ledger)
	seedReportHistory(t, ledger)

	// Corrupt a cached report; recalculation must restore it
	for _, report := range ledger.Monthly {
		report.TotalIncome = decimal.NewFromInt(9999)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/recalculate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.Recalculate(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}

	for _, report := range ledger.Monthly {
		if report.Month == 3 && !report.TotalIncome.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Expected march totalIncome 100 after recalculation, got %s", report.TotalIncome)
		}
	}
}
