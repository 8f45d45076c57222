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

// LoanHandler handles loan-related HTTP requests. Loans have no create
// endpoint; they come into being when a disbursement commits.
type LoanHandler struct {
	loanService *service.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID               int32  `json:"id"`
	OwnerID          int32  `json:"ownerId"`
	BorrowerName     string `json:"borrowerName"`
	PrincipalAmount  string `json:"principalAmount"`
	InterestRate     string `json:"interestRate"`
	TermMonths       int32  `json:"termMonths"`
	TotalInterest    string `json:"totalInterest"`
	RemainingBalance string `json:"remainingBalance"`
	AmountCollected  string `json:"amountCollected"`
	Status           string `json:"status"`
	AccountID        int32  `json:"accountId"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func toLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:               loan.ID,
		OwnerID:          loan.OwnerID,
		BorrowerName:     loan.BorrowerName,
		PrincipalAmount:  loan.PrincipalAmount.StringFixed(2),
		InterestRate:     loan.InterestRate.StringFixed(2),
		TermMonths:       loan.TermMonths,
		TotalInterest:    loan.TotalInterest.StringFixed(2),
		RemainingBalance: loan.RemainingBalance.StringFixed(2),
		AmountCollected:  loan.AmountCollected().StringFixed(2),
		Status:           string(loan.Status),
		AccountID:        loan.AccountID,
		CreatedAt:        loan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        loan.UpdatedAt.Format(time.RFC3339),
	}
}

// GetLoans handles GET /loans with an optional status filter
func (h *LoanHandler) GetLoans(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var status *domain.LoanStatus
	if statusStr := c.QueryParam("status"); statusStr != "" {
		s := domain.LoanStatus(statusStr)
		if s != domain.LoanStatusActive && s != domain.LoanStatusPaid && s != domain.LoanStatusDefaulted {
			return NewValidationError(c, "Invalid status (must be active, paid or defaulted)", nil)
		}
		status = &s
	}

	loans, err := h.loanService.GetLoans(ownerID, status)
	if err != nil {
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get loans")
		return NewInternalError(c, "Failed to get loans")
	}

	resp := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		resp[i] = toLoanResponse(loan)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetLoan handles GET /loans/:id
func (h *LoanHandler) GetLoan(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	loan, err := h.loanService.GetLoanByID(ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int32("loan_id", id).Msg("Failed to get loan")
		return NewInternalError(c, "Failed to get loan")
	}

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// LoanStatementResponse represents a loan with its transaction history
type LoanStatementResponse struct {
	Loan         LoanResponse          `json:"loan"`
	Transactions []TransactionResponse `json:"transactions"`
}

// GetLoanStatement handles GET /loans/:id/statement
func (h *LoanHandler) GetLoanStatement(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	statement, err := h.loanService.GetLoanStatement(ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int32("loan_id", id).Msg("Failed to get loan statement")
		return NewInternalError(c, "Failed to get loan statement")
	}

	transactions := make([]TransactionResponse, len(statement.Transactions))
	for i, tx := range statement.Transactions {
		transactions[i] = toTransactionResponse(tx)
	}

	return c.JSON(http.StatusOK, LoanStatementResponse{
		Loan:         toLoanResponse(statement.Loan),
		Transactions: transactions,
	})
}

// MarkDefaulted handles POST /loans/:id/default
func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid loan id", nil)
	}

	loan, err := h.loanService.MarkDefaulted(ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return NewNotFoundError(c, "Loan not found")
		}
		if errors.Is(err, domain.ErrLoanAlreadyClosed) {
			return NewConflictError(c, "Loan is already closed")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int32("loan_id", id).Msg("Failed to mark loan defaulted")
		return NewInternalError(c, "Failed to mark loan defaulted")
	}

	log.Info().Int32("owner_id", ownerID).Int32("loan_id", id).Msg("Loan marked defaulted")

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}
