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
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService      *service.LedgerService
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService *service.LedgerService, transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService:      ledgerService,
		transactionService: transactionService,
	}
}

// CommitTransactionRequest represents the commit transaction request body
type CommitTransactionRequest struct {
	Type          string  `json:"type"`
	Amount        string  `json:"amount"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
	Reference     string  `json:"reference,omitempty"`
	Date          *string `json:"date,omitempty"`
	FromAccountID *int32  `json:"fromAccountId,omitempty"`
	ToAccountID   *int32  `json:"toAccountId,omitempty"`
	LoanID        *int32  `json:"loanId,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID            int32   `json:"id"`
	OwnerID       int32   `json:"ownerId"`
	OccurredOn    string  `json:"occurredOn"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	Amount        string  `json:"amount"`
	Description   string  `json:"description"`
	Reference     string  `json:"reference"`
	FromAccountID *int32  `json:"fromAccountId,omitempty"`
	ToAccountID   *int32  `json:"toAccountId,omitempty"`
	BalanceAfter  *string `json:"balanceAfter,omitempty"`
	LoanID        *int32  `json:"loanId,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// CommitResponse represents the outcome of one ledger commit
type CommitResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Loan        *LoanResponse       `json:"loan,omitempty"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            tx.ID,
		OwnerID:       tx.OwnerID,
		OccurredOn:    tx.OccurredOn.Format("2006-01-02"),
		Type:          string(tx.Type),
		Category:      tx.Category,
		Amount:        tx.Amount.StringFixed(2),
		Description:   tx.Description,
		Reference:     tx.Reference,
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		LoanID:        tx.LoanID,
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.BalanceAfter != nil {
		after := tx.BalanceAfter.StringFixed(2)
		resp.BalanceAfter = &after
	}
	return resp
}

// CommitTransaction handles POST /transactions, the single write path into
// the ledger
func (h *TransactionHandler) CommitTransaction(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CommitTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var occurredOn *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		occurredOn = &parsed
	}

	input := domain.TransactionInput{
		OccurredOn:    occurredOn,
		Type:          domain.TransactionType(req.Type),
		Category:      req.Category,
		Amount:        amount,
		Description:   req.Description,
		Reference:     req.Reference,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		LoanID:        req.LoanID,
	}

	result, err := h.ledgerService.CommitTransaction(c.Request().Context(), ownerID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransactionType):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense, loan_payment, loan_disbursement"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		case errors.Is(err, domain.ErrDescriptionTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description must be 500 characters or less"},
			})
		case errors.Is(err, domain.ErrCategoryTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category must be 100 characters or less"},
			})
		case errors.Is(err, domain.ErrSameAccountTransfer):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "toAccountId", Message: "Source and destination accounts must differ"},
			})
		case errors.Is(err, domain.ErrDisbursementRequiresSource):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fromAccountId", Message: "Disbursement requires a source account"},
			})
		case errors.Is(err, domain.ErrBorrowerNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Disbursement description must name the borrower"},
			})
		case errors.Is(err, domain.ErrPaymentRequiresLoan):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "loanId", Message: "Loan payment requires a loan id"},
			})
		case errors.Is(err, domain.ErrAccountNotFound):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fromAccountId", Message: "Account not found"},
			})
		case errors.Is(err, domain.ErrLoanNotFound):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "loanId", Message: "Loan not found"},
			})
		case errors.Is(err, domain.ErrInsufficientFunds):
			return NewUnprocessableError(c, "Insufficient funds in source account")
		case errors.Is(err, domain.ErrAccountInactive):
			return NewUnprocessableError(c, "Account is inactive")
		case errors.Is(err, domain.ErrCommitConflict):
			return NewConflictError(c, "Concurrent commit conflict, please retry")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to commit transaction")
		return NewInternalError(c, "Failed to commit transaction")
	}

	log.Info().
		Int32("owner_id", ownerID).
		Int32("transaction_id", result.Transaction.ID).
		Str("type", string(result.Transaction.Type)).
		Msg("Transaction committed")

	resp := CommitResponse{Transaction: toTransactionResponse(result.Transaction)}
	if result.Loan != nil {
		loanResp := toLoanResponse(result.Loan)
		resp.Loan = &loanResp
	}
	return c.JSON(http.StatusCreated, resp)
}

// PaginatedTransactionsResponse represents paginated transactions in API responses
type PaginatedTransactionsResponse struct {
	Data       []TransactionResponse `json:"data"`
	Page       int32                 `json:"page"`
	PageSize   int32                 `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int32                 `json:"totalPages"`
}

// GetTransactions handles GET /transactions with optional filters
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters := &domain.TransactionFilters{
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if accountIDStr := c.QueryParam("accountId"); accountIDStr != "" {
		var accountID int32
		if _, err := parseIntParam(accountIDStr, &accountID); err != nil {
			return NewValidationError(c, "Invalid accountId", nil)
		}
		filters.AccountID = &accountID
	}

	if startDateStr := c.QueryParam("startDate"); startDateStr != "" {
		parsed, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return NewValidationError(c, "Invalid startDate format (use YYYY-MM-DD)", nil)
		}
		filters.StartDate = &parsed
	}

	if endDateStr := c.QueryParam("endDate"); endDateStr != "" {
		parsed, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return NewValidationError(c, "Invalid endDate format (use YYYY-MM-DD)", nil)
		}
		filters.EndDate = &parsed
	}

	if typeStr := c.QueryParam("type"); typeStr != "" {
		transactionType := domain.TransactionType(typeStr)
		if !domain.ValidTransactionTypes[transactionType] {
			return NewValidationError(c, "Invalid type", nil)
		}
		filters.Type = &transactionType
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		var page int32
		if _, err := parseIntParam(pageStr, &page); err != nil || page < 1 {
			return NewValidationError(c, "Invalid page (must be positive integer)", nil)
		}
		filters.Page = page
	}

	if pageSizeStr := c.QueryParam("pageSize"); pageSizeStr != "" {
		var pageSize int32
		if _, err := parseIntParam(pageSizeStr, &pageSize); err != nil || pageSize < 1 {
			return NewValidationError(c, "Invalid pageSize (must be positive integer)", nil)
		}
		if pageSize > domain.MaxPageSize {
			pageSize = domain.MaxPageSize
		}
		filters.PageSize = pageSize
	}

	page, err := h.transactionService.GetTransactions(ownerID, filters)
	if err != nil {
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	data := make([]TransactionResponse, len(page.Data))
	for i, tx := range page.Data {
		data[i] = toTransactionResponse(tx)
	}

	return c.JSON(http.StatusOK, PaginatedTransactionsResponse{
		Data:       data,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// GetTransaction handles GET /transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid transaction id", nil)
	}

	tx, err := h.transactionService.GetTransactionByID(ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int32("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}
