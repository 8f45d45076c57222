package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrInvalidKind       = errors.New("invalid account kind")
	ErrInsufficientFunds = errors.New("insufficient funds in source account")
)

type AccountKind string
type AccountStatus string

const (
	KindCash           AccountKind = "cash"
	KindBank           AccountKind = "bank"
	KindMobileMoney    AccountKind = "mobile_money"
	KindLoanReceivable AccountKind = "loan_receivable"
)

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// ValidAccountKinds lists every kind an account can be created with
var ValidAccountKinds = map[AccountKind]bool{
	KindCash:           true,
	KindBank:           true,
	KindMobileMoney:    true,
	KindLoanReceivable: true,
}

// Account is a named store of funds. Its balance is mutated only by the
// ledger engine; accounts are never hard-deleted, only deactivated.
type Account struct {
	ID                int32           `json:"id"`
	OwnerID           int32           `json:"ownerId"`
	Name              string          `json:"name"`
	Kind              AccountKind     `json:"kind"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	PreviousBalance   decimal.Decimal `json:"previousBalance"`
	LastTransactionID *int32          `json:"lastTransactionId,omitempty"`
	Status            AccountStatus   `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrNameRequired
	}
	if len(a.Name) > MaxAccountNameLength {
		return ErrNameTooLong
	}
	if !ValidAccountKinds[a.Kind] {
		return ErrInvalidKind
	}
	return nil
}

// IsActive reports whether the account can take part in new transactions
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(ownerID, id int32) (*Account, error)
	GetAllByOwner(ownerID int32) ([]*Account, error)
	SetStatus(ownerID, id int32, status AccountStatus) (*Account, error)
}
