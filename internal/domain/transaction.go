package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrInvalidTransactionType     = errors.New("invalid transaction type")
	ErrPaymentRequiresLoan        = errors.New("loan payment requires a loan id")
	ErrDisbursementRequiresSource = errors.New("loan disbursement requires a source account")
	ErrBorrowerNameRequired       = errors.New("disbursement description must name the borrower")
	ErrDescriptionTooLong         = errors.New("description exceeds maximum length")
	ErrCategoryTooLong            = errors.New("category exceeds maximum length")
	ErrSameAccountTransfer        = errors.New("source and destination accounts must differ")
)

type TransactionType string

const (
	TransactionTypeIncome       TransactionType = "income"
	TransactionTypeExpense      TransactionType = "expense"
	TransactionTypePayment      TransactionType = "loan_payment"
	TransactionTypeDisbursement TransactionType = "loan_disbursement"
)

// ValidTransactionTypes lists every type the ledger accepts. The type is
// also the loan-lifecycle selector: loan_disbursement creates a loan,
// loan_payment settles against one, the rest leave loans untouched.
var ValidTransactionTypes = map[TransactionType]bool{
	TransactionTypeIncome:       true,
	TransactionTypeExpense:      true,
	TransactionTypePayment:      true,
	TransactionTypeDisbursement: true,
}

// Transaction is a committed ledger entry. Immutable once written; the
// engine stamps BalanceAfter and, for disbursements, LoanID during commit.
type Transaction struct {
	ID            int32            `json:"id"`
	OwnerID       int32            `json:"ownerId"`
	OccurredOn    time.Time        `json:"occurredOn"`
	Type          TransactionType  `json:"type"`
	Category      string           `json:"category"`
	Amount        decimal.Decimal  `json:"amount"`
	Description   string           `json:"description"`
	Reference     string           `json:"reference"`
	FromAccountID *int32           `json:"fromAccountId,omitempty"`
	ToAccountID   *int32           `json:"toAccountId,omitempty"`
	BalanceAfter  *decimal.Decimal `json:"balanceAfter,omitempty"`
	LoanID        *int32           `json:"loanId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// IsDisbursement reports whether committing this transaction creates a loan
func (t *Transaction) IsDisbursement() bool {
	return t.Type == TransactionTypeDisbursement
}

// IsPayment reports whether committing this transaction settles a loan
func (t *Transaction) IsPayment() bool {
	return t.Type == TransactionTypePayment
}

// TransactionInput is the caller-facing shape accepted by CommitTransaction
type TransactionInput struct {
	OccurredOn    *time.Time
	Type          TransactionType
	Category      string
	Amount        decimal.Decimal
	Description   string
	Reference     string
	FromAccountID *int32
	ToAccountID   *int32
	LoanID        *int32
}

type TransactionFilters struct {
	AccountID *int32
	Type      *TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int32
	PageSize  int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

type TransactionRepository interface {
	GetByID(ownerID, id int32) (*Transaction, error)
	GetByOwner(ownerID int32, filters *TransactionFilters) (*PaginatedTransactions, error)
	GetByLoanID(ownerID, loanID int32) ([]*Transaction, error)
	GetByMonth(ownerID int32, year, month int) ([]*Transaction, error)
}
