package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Period identifies one aggregation bucket in the transaction history
type Period struct {
	OwnerID int32
	Year    int
	Month   int
}

// LedgerUnit is the write surface the ledger engine drives. Every method
// acts inside one atomic unit: either the whole commit lands or none of it
// does. ...ForUpdate reads take row locks so two racing commits can never
// both validate against a stale balance.
type LedgerUnit interface {
	AccountForUpdate(ctx context.Context, ownerID, accountID int32) (*Account, error)
	SaveAccountBalance(ctx context.Context, account *Account) error

	InsertTransaction(ctx context.Context, tx *Transaction) (*Transaction, error)
	StampTransaction(ctx context.Context, id int32, balanceAfter *decimal.Decimal, loanID *int32) error

	InsertLoan(ctx context.Context, loan *Loan) (*Loan, error)
	LoanForUpdate(ctx context.Context, ownerID, loanID int32) (*Loan, error)
	SaveLoan(ctx context.Context, loan *Loan) error

	// PeriodTotals sums the owner's committed transactions for (year, month);
	// month 0 sums the whole year. Must observe rows inserted earlier in the
	// same unit.
	PeriodTotals(ctx context.Context, ownerID int32, year, month int) (PeriodTotals, error)
	UpsertMonthlyReport(ctx context.Context, ownerID int32, year, month int, totals PeriodTotals) error
	UpsertYearlyReport(ctx context.Context, ownerID int32, year int, totals PeriodTotals) error

	// DeleteReports wipes report rows for one owner, or for all when nil
	DeleteReports(ctx context.Context, ownerID *int32) error
	// TransactionPeriods lists the distinct (owner, year, month) buckets
	// present in the transaction history, scoped to one owner when set.
	TransactionPeriods(ctx context.Context, ownerID *int32) ([]Period, error)
}

// LedgerStore opens atomic units. Implementations must guarantee that
// concurrent units touching the same rows serialize (or fail with
// ErrCommitConflict) rather than losing updates.
type LedgerStore interface {
	WithinUnit(ctx context.Context, fn func(unit LedgerUnit) error) error
}
