package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidPeriod  = errors.New("invalid report period")
)

// PeriodTotals holds the four per-type sums the aggregator maintains
type PeriodTotals struct {
	TotalDisbursed decimal.Decimal `json:"totalDisbursed"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
}

// ZeroTotals returns totals with every sum at zero
func ZeroTotals() PeriodTotals {
	return PeriodTotals{
		TotalDisbursed: decimal.Zero,
		TotalCollected: decimal.Zero,
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
	}
}

// Add folds one transaction amount into the matching total
func (p *PeriodTotals) Add(txType TransactionType, amount decimal.Decimal) {
	switch txType {
	case TransactionTypeDisbursement:
		p.TotalDisbursed = p.TotalDisbursed.Add(amount)
	case TransactionTypePayment:
		p.TotalCollected = p.TotalCollected.Add(amount)
	case TransactionTypeIncome:
		p.TotalIncome = p.TotalIncome.Add(amount)
	case TransactionTypeExpense:
		p.TotalExpenses = p.TotalExpenses.Add(amount)
	}
}

// MonthlyReport is one owner's aggregate for a calendar month, unique per
// (owner, year, month). Recomputed from the transaction table on every
// commit; recomputation is idempotent.
type MonthlyReport struct {
	ID        int32 `json:"id"`
	OwnerID   int32 `json:"ownerId"`
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	PeriodTotals
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// YearlyReport is one owner's aggregate for a calendar year
type YearlyReport struct {
	ID      int32 `json:"id"`
	OwnerID int32 `json:"ownerId"`
	Year    int   `json:"year"`
	PeriodTotals
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReportRepository interface {
	GetMonthly(ownerID int32, year, month int) (*MonthlyReport, error)
	GetMonthlyByYear(ownerID int32, year int) ([]*MonthlyReport, error)
	GetYearly(ownerID int32, year int) (*YearlyReport, error)
	GetAllYearly(ownerID int32) ([]*YearlyReport, error)
}
