package service

import (
	"strings"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountService handles account management. Balances are owned by the
// ledger engine; this service only creates accounts and flips status.
type AccountService struct {
	accountRepo domain.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccountInput contains input for creating an account
type CreateAccountInput struct {
	Name           string
	Kind           domain.AccountKind
	OpeningBalance decimal.Decimal
}

// CreateAccount creates a new account with an optional opening balance
func (s *AccountService) CreateAccount(ownerID int32, input CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxAccountNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !domain.ValidAccountKinds[input.Kind] {
		return nil, domain.ErrInvalidKind
	}
	if input.OpeningBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	account := &domain.Account{
		OwnerID:         ownerID,
		Name:            name,
		Kind:            input.Kind,
		CurrentBalance:  input.OpeningBalance,
		PreviousBalance: decimal.Zero,
		Status:          domain.AccountStatusActive,
	}

	return s.accountRepo.Create(account)
}

// GetAccounts retrieves all accounts for an owner
func (s *AccountService) GetAccounts(ownerID int32) ([]*domain.Account, error) {
	return s.accountRepo.GetAllByOwner(ownerID)
}

// GetAccountByID retrieves an account by ID
func (s *AccountService) GetAccountByID(ownerID, id int32) (*domain.Account, error) {
	return s.accountRepo.GetByID(ownerID, id)
}

// DeactivateAccount marks an account inactive; its balance and history
// are kept, new transactions against it are rejected
func (s *AccountService) DeactivateAccount(ownerID, id int32) (*domain.Account, error) {
	return s.accountRepo.SetStatus(ownerID, id, domain.AccountStatusInactive)
}

// ReactivateAccount marks an inactive account active again
func (s *AccountService) ReactivateAccount(ownerID, id int32) (*domain.Account, error) {
	return s.accountRepo.SetStatus(ownerID, id, domain.AccountStatusActive)
}
