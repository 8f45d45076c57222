package domain

import "github.com/shopspring/decimal"

// KindBalance is one account kind's aggregate position
type KindBalance struct {
	Kind    AccountKind     `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
	Count   int32           `json:"count"`
}

// DashboardSummary is the at-a-glance view backing the dashboard screen
type DashboardSummary struct {
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	BalancesByKind   []KindBalance   `json:"balancesByKind"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	ActiveLoanCount  int64           `json:"activeLoanCount"`
	PaidLoanCount    int64           `json:"paidLoanCount"`
	CurrentMonth     PeriodTotals    `json:"currentMonth"`
}
