package service

import (
	"errors"
	"time"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// DashboardService assembles the at-a-glance summary backing the dashboard
type DashboardService struct {
	accountRepo domain.AccountRepository
	loanRepo    domain.LoanRepository
	reportRepo  domain.ReportRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(accountRepo domain.AccountRepository, loanRepo domain.LoanRepository, reportRepo domain.ReportRepository) *DashboardService {
	return &DashboardService{
		accountRepo: accountRepo,
		loanRepo:    loanRepo,
		reportRepo:  reportRepo,
	}
}

// GetSummary builds the dashboard summary for the current month
func (s *DashboardService) GetSummary(ownerID int32) (*domain.DashboardSummary, error) {
	now := time.Now().UTC()
	return s.GetSummaryForMonth(ownerID, now.Year(), int(now.Month()))
}

// GetSummaryForMonth builds the dashboard summary for a specific month
func (s *DashboardService) GetSummaryForMonth(ownerID int32, year, month int) (*domain.DashboardSummary, error) {
	accounts, err := s.accountRepo.GetAllByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	byKind := make(map[domain.AccountKind]*domain.KindBalance)
	total := decimal.Zero
	for _, a := range accounts {
		if a.Status != domain.AccountStatusActive {
			continue
		}
		kb, ok := byKind[a.Kind]
		if !ok {
			kb = &domain.KindBalance{Kind: a.Kind, Balance: decimal.Zero}
			byKind[a.Kind] = kb
		}
		kb.Balance = kb.Balance.Add(a.CurrentBalance)
		kb.Count++
		total = total.Add(a.CurrentBalance)
	}

	balances := make([]domain.KindBalance, 0, len(byKind))
	for _, kind := range []domain.AccountKind{domain.KindCash, domain.KindBank, domain.KindMobileMoney, domain.KindLoanReceivable} {
		if kb, ok := byKind[kind]; ok {
			balances = append(balances, *kb)
		}
	}

	outstanding, err := s.loanRepo.OutstandingTotal(ownerID)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.loanRepo.CountByStatus(ownerID, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	paidCount, err := s.loanRepo.CountByStatus(ownerID, domain.LoanStatusPaid)
	if err != nil {
		return nil, err
	}

	currentMonth := domain.ZeroTotals()
	report, err := s.reportRepo.GetMonthly(ownerID, year, month)
	if err != nil && !errors.Is(err, domain.ErrReportNotFound) {
		return nil, err
	}
	if report != nil {
		currentMonth = report.PeriodTotals
	}

	return &domain.DashboardSummary{
		TotalBalance:     total,
		BalancesByKind:   balances,
		TotalOutstanding: outstanding,
		ActiveLoanCount:  activeCount,
		PaidLoanCount:    paidCount,
		CurrentMonth:     currentMonth,
	}, nil
}
