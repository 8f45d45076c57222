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

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	OpeningBalance string `json:"openingBalance,omitempty"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID                int32  `json:"id"`
	OwnerID           int32  `json:"ownerId"`
	Name              string `json:"name"`
	Kind              string `json:"kind"`
	CurrentBalance    string `json:"currentBalance"`
	PreviousBalance   string `json:"previousBalance"`
	LastTransactionID *int32 `json:"lastTransactionId,omitempty"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                account.ID,
		OwnerID:           account.OwnerID,
		Name:              account.Name,
		Kind:              string(account.Kind),
		CurrentBalance:    account.CurrentBalance.StringFixed(2),
		PreviousBalance:   account.PreviousBalance.StringFixed(2),
		LastTransactionID: account.LastTransactionID,
		Status:            string(account.Status),
		CreatedAt:         account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         account.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	openingBalance := decimal.Zero
	if req.OpeningBalance != "" {
		parsed, err := decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			return NewValidationError(c, "Invalid openingBalance", []ValidationError{
				{Field: "openingBalance", Message: "Must be a valid decimal number"},
			})
		}
		openingBalance = parsed
	}

	account, err := h.accountService.CreateAccount(ownerID, service.CreateAccountInput{
		Name:           req.Name,
		Kind:           domain.AccountKind(req.Kind),
		OpeningBalance: openingBalance,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		case errors.Is(err, domain.ErrInvalidKind):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "kind", Message: "Kind must be one of: cash, bank, mobile_money, loan_receivable"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "openingBalance", Message: "Opening balance must not be negative"},
			})
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Int32("owner_id", ownerID).Int32("account_id", account.ID).Str("name", account.Name).Msg("Account created")

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	accounts, err := h.accountService.GetAccounts(ownerID)
	if err != nil {
		log.Error().Err(err).Int32("owner_id", ownerID).Msg("Failed to get accounts")
		return NewInternalError(c, "Failed to get accounts")
	}

	resp := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		resp[i] = toAccountResponse(account)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAccount handles GET /accounts/:id
func (h *AccountHandler) GetAccount(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid account id", nil)
	}

	account, err := h.accountService.GetAccountByID(ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int32("account_id", id).Msg("Failed to get account")
		return NewInternalError(c, "Failed to get account")
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeactivateAccount handles POST /accounts/:id/deactivate
func (h *AccountHandler) DeactivateAccount(c echo.Context) error {
	return h.setStatus(c, domain.AccountStatusInactive, "deactivate")
}

// ReactivateAccount handles POST /accounts/:id/reactivate
func (h *AccountHandler) ReactivateAccount(c echo.Context) error {
	return h.setStatus(c, domain.AccountStatusActive, "reactivate")
}

func (h *AccountHandler) setStatus(c echo.Context, status domain.AccountStatus, action string) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid account id", nil)
	}

	var (
		account *domain.Account
		err     error
	)
	if status == domain.AccountStatusInactive {
		account, err = h.accountService.DeactivateAccount(ownerID, id)
	} else {
		account, err = h.accountService.ReactivateAccount(ownerID, id)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int32("account_id", id).Msgf("Failed to %s account", action)
		return NewInternalError(c, "Failed to update account status")
	}

	log.Info().Int32("owner_id", ownerID).Int32("account_id", id).Str("status", string(account.Status)).Msg("Account status updated")

	return c.JSON(http.StatusOK, toAccountResponse(account))
}
