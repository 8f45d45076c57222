package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanAlreadyClosed = errors.New("loan is already closed")
)

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusPaid      LoanStatus = "paid"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// Flat interest terms applied to every loan at origination. The interest
// formula multiplies and divides by the term, so the term is numerically
// inert; it is kept because the stored schedule is quoted over it.
const (
	FlatInterestRate = 30
	LoanTermMonths   = 12
)

// Loan is created implicitly when a disbursement transaction commits.
// Payments decrement RemainingBalance; status flips to paid at <= 0.
// Defaulted is only ever set out-of-band through MarkDefaulted.
type Loan struct {
	ID               int32           `json:"id"`
	OwnerID          int32           `json:"ownerId"`
	BorrowerName     string          `json:"borrowerName"`
	PrincipalAmount  decimal.Decimal `json:"principalAmount"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	TermMonths       int32           `json:"termMonths"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Status           LoanStatus      `json:"status"`
	AccountID        int32           `json:"accountId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// IsOpen reports whether the loan can still take payments
func (l *Loan) IsOpen() bool {
	return l.Status == LoanStatusActive
}

// AmountCollected returns how much of the scheduled total has been paid in
func (l *Loan) AmountCollected() decimal.Decimal {
	return l.PrincipalAmount.Add(l.TotalInterest).Sub(l.RemainingBalance)
}

type LoanRepository interface {
	GetByID(ownerID, id int32) (*Loan, error)
	GetByOwner(ownerID int32, status *LoanStatus) ([]*Loan, error)
	OutstandingTotal(ownerID int32) (decimal.Decimal, error)
	CountByStatus(ownerID int32, status LoanStatus) (int64, error)
	SetStatus(ownerID, id int32, status LoanStatus) (*Loan, error)
}
