package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/oseko/lendbook-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestExportMonth_Success(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	statementRepo := testutil.NewMockStatementRepository()
	statementService := service.NewStatementService(testutil.NewMemoryTransactionRepository(ledger), statementRepo)
	handler := NewStatementHandler(statementService)

	account := seedCashAccount(ledger, 1, "1000.00")
	march := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	_, err := service.NewLedgerService(ledger).CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(100),
		ToAccountID: &account.ID,
		OccurredOn:  &march,
	})
	if err != nil {
		t.Fatalf("Failed to seed income: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/2026/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "3")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err = handler.ExportMonth(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response StatementExportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.ObjectPath != "statements/1/2026-03.csv" {
		t.Errorf("Expected objectPath 'statements/1/2026-03.csv', got %s", response.ObjectPath)
	}

	if response.TransactionCount != 1 {
		t.Errorf("Expected 1 transaction, got %d", response.TransactionCount)
	}

	if response.DownloadURL == "" {
		t.Error("Expected a download URL")
	}

	body, ok := statementRepo.Objects[response.ObjectPath]
	if !ok {
		t.Fatal("Expected statement to be uploaded")
	}

	if !strings.Contains(string(body), "income") {
		t.Errorf("Expected CSV body to contain the income row, got %s", string(body))
	}
}

func TestExportMonth_InvalidPeriod(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	statementService := service.NewStatementService(
		testutil.NewMemoryTransactionRepository(ledger),
		testutil.NewMockStatementRepository(),
	)
	handler := NewStatementHandler(statementService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/2026/0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "0")
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.ExportMonth(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
