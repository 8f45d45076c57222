package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/oseko/lendbook-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newLoanHandler(ledger *testutil.MemoryLedger) *LoanHandler {
	loanService := service.NewLoanService(
		testutil.NewMemoryLoanRepository(ledger),
		testutil.NewMemoryTransactionRepository(ledger),
	)
	return NewLoanHandler(loanService)
}

// Disburses a loan through the ledger and returns it.
func seedLoan(t *testing.T, ledger *testutil.MemoryLedger, ownerID int32, principal string) *domain.Loan {
	t.Helper()
	account := seedCashAccount(ledger, ownerID, "100000.00")
	amount, _ := decimal.NewFromString(principal)
	result, err := service.NewLedgerService(ledger).CommitTransaction(context.Background(), ownerID, domain.TransactionInput{
		Type:          domain.TransactionTypeDisbursement,
		Amount:        amount,
		Description:   "Juma Otieno",
		FromAccountID: &account.ID,
	})
	if err != nil {
		t.Fatalf("Failed to seed loan: %v", err)
	}
	return result.Loan
}

func TestGetLoans_StatusFilter(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)
	seedLoan(t, ledger, 1, "1000.00")
	paid := seedLoan(t, ledger, 1, "2000.00")
	ledger.Loans[paid.ID].Status = domain.LoanStatusPaid

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans?status=active", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetLoans(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []LoanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 active loan, got %d", len(response))
	}

	if response[0].Status != "active" {
		t.Errorf("Expected status 'active', got %s", response[0].Status)
	}
}

func TestGetLoans_InvalidStatus(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans?status=overdue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetLoans(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetLoan_Success(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)
	loan := seedLoan(t, ledger, 1, "1000.00")
	idStr := fmt.Sprintf("%d", loan.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/"+idStr, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetLoan(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response LoanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.PrincipalAmount != "1000.00" {
		t.Errorf("Expected principal '1000.00', got %s", response.PrincipalAmount)
	}

	if response.InterestRate != "30.00" {
		t.Errorf("Expected interestRate '30.00', got %s", response.InterestRate)
	}

	if response.TermMonths != 12 {
		t.Errorf("Expected 12 term months, got %d", response.TermMonths)
	}

	if response.AmountCollected != "0.00" {
		t.Errorf("Expected amountCollected '0.00', got %s", response.AmountCollected)
	}
}

func TestGetLoan_OtherOwnerIsNotFound(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)
	loan := seedLoan(t, ledger, 2, "1000.00")
	idStr := fmt.Sprintf("%d", loan.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/"+idStr, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.GetLoan(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetLoanStatement_Success(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)
	loan := seedLoan(t, ledger, 1, "1000.00")

	// Record a payment against the loan
	destination := seedCashAccount(ledger, 1, "0.00")
	payment, _ := decimal.NewFromString("500.00")
	_, err := service.NewLedgerService(ledger).CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypePayment,
		Amount:      payment,
		ToAccountID: &destination.ID,
		LoanID:      &loan.ID,
	})
	if err != nil {
		t.Fatalf("Failed to seed payment: %v", err)
	}

	idStr := fmt.Sprintf("%d", loan.ID)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/"+idStr+"/statement", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err = handler.GetLoanStatement(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response LoanStatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response.Transactions) != 2 {
		t.Fatalf("Expected 2 statement transactions, got %d", len(response.Transactions))
	}

	if response.Transactions[0].Type != "loan_disbursement" {
		t.Errorf("Expected first statement row to be the disbursement, got %s", response.Transactions[0].Type)
	}

	if response.Loan.RemainingBalance != "800.00" {
		t.Errorf("Expected remainingBalance '800.00', got %s", response.Loan.RemainingBalance)
	}

	if response.Loan.AmountCollected != "500.00" {
		t.Errorf("Expected amountCollected '500.00', got %s", response.Loan.AmountCollected)
	}
}

func TestMarkDefaulted_Success(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)
	loan := seedLoan(t, ledger, 1, "1000.00")
	idStr := fmt.Sprintf("%d", loan.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+idStr+"/default", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.MarkDefaulted(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response LoanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Status != "defaulted" {
		t.Errorf("Expected status 'defaulted', got %s", response.Status)
	}
}

func TestMarkDefaulted_ClosedLoanConflicts(t *testing.T) {
	e := echo.New()
	ledger := testutil.NewMemoryLedger()
	handler := newLoanHandler(ledger)
	loan := seedLoan(t, ledger, 1, "1000.00")
	ledger.Loans[loan.ID].Status = domain.LoanStatusPaid
	idStr := fmt.Sprintf("%d", loan.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+idStr+"/default", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	setupAuthContextWithOwner(c, "auth0|owner1", "owner@example.com", "Owner", 1)

	err := handler.MarkDefaulted(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}
