package service

import (
	"context"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/util"
	"github.com/oseko/lendbook-backend/internal/websocket"
)

// ReportService serves the monthly/yearly aggregates and owns the bulk
// rebuild used for backfill and repair
type ReportService struct {
	store          domain.LedgerStore
	reportRepo     domain.ReportRepository
	eventPublisher websocket.EventPublisher
}

// NewReportService creates a new ReportService
func NewReportService(store domain.LedgerStore, reportRepo domain.ReportRepository) *ReportService {
	return &ReportService{store: store, reportRepo: reportRepo}
}

// SetEventPublisher sets the publisher for real-time report events
func (s *ReportService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// GetMonthly retrieves one owner's report for a calendar month
func (s *ReportService) GetMonthly(ownerID int32, year, month int) (*domain.MonthlyReport, error) {
	if !util.ValidYear(year) || !util.ValidMonth(month) {
		return nil, domain.ErrInvalidPeriod
	}
	return s.reportRepo.GetMonthly(ownerID, year, month)
}

// GetMonthlyByYear retrieves all monthly reports for one year
func (s *ReportService) GetMonthlyByYear(ownerID int32, year int) ([]*domain.MonthlyReport, error) {
	if !util.ValidYear(year) {
		return nil, domain.ErrInvalidPeriod
	}
	return s.reportRepo.GetMonthlyByYear(ownerID, year)
}

// GetYearly retrieves one owner's report for a calendar year
func (s *ReportService) GetYearly(ownerID int32, year int) (*domain.YearlyReport, error) {
	if !util.ValidYear(year) {
		return nil, domain.ErrInvalidPeriod
	}
	return s.reportRepo.GetYearly(ownerID, year)
}

// GetAllYearly retrieves every yearly report for an owner
func (s *ReportService) GetAllYearly(ownerID int32) ([]*domain.YearlyReport, error) {
	return s.reportRepo.GetAllYearly(ownerID)
}

// Recalculate wipes and rebuilds the monthly and yearly reports from the
// full transaction history, for one owner or for all owners when nil.
// Running it twice with no intervening commits produces identical rows.
func (s *ReportService) Recalculate(ctx context.Context, ownerID *int32) error {
	err := s.store.WithinUnit(ctx, func(unit domain.LedgerUnit) error {
		if err := unit.DeleteReports(ctx, ownerID); err != nil {
			return err
		}

		periods, err := unit.TransactionPeriods(ctx, ownerID)
		if err != nil {
			return err
		}

		type yearKey struct {
			ownerID int32
			year    int
		}
		years := make(map[yearKey]bool)

		for _, p := range periods {
			totals, err := unit.PeriodTotals(ctx, p.OwnerID, p.Year, p.Month)
			if err != nil {
				return err
			}
			if err := unit.UpsertMonthlyReport(ctx, p.OwnerID, p.Year, p.Month, totals); err != nil {
				return err
			}
			years[yearKey{p.OwnerID, p.Year}] = true
		}

		for y := range years {
			totals, err := unit.PeriodTotals(ctx, y.ownerID, y.year, 0)
			if err != nil {
				return err
			}
			if err := unit.UpsertYearlyReport(ctx, y.ownerID, y.year, totals); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.eventPublisher != nil && ownerID != nil {
		s.eventPublisher.Publish(*ownerID, websocket.ReportsRecalculated(map[string]any{"ownerId": *ownerID}))
	}
	return nil
}
