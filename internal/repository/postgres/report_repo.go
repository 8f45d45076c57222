package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oseko/lendbook-backend/internal/domain"
)

const monthlyReportColumns = `id, owner_id, year, month, total_disbursed, total_collected,
	total_income, total_expenses, created_at, updated_at`

const yearlyReportColumns = `id, owner_id, year, total_disbursed, total_collected,
	total_income, total_expenses, created_at, updated_at`

// ReportRepository implements domain.ReportRepository using PostgreSQL.
// Reports are written only inside ledger units; this is the read side.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// GetMonthly retrieves one monthly report
func (r *ReportRepository) GetMonthly(ownerID int32, year, month int) (*domain.MonthlyReport, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+monthlyReportColumns+` FROM monthly_reports
		WHERE owner_id = $1 AND year = $2 AND month = $3`, ownerID, year, month)

	report, err := scanMonthlyReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// GetMonthlyByYear retrieves all monthly reports for a year, January first
func (r *ReportRepository) GetMonthlyByYear(ownerID int32, year int) ([]*domain.MonthlyReport, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+monthlyReportColumns+` FROM monthly_reports
		WHERE owner_id = $1 AND year = $2
		ORDER BY month`, ownerID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.MonthlyReport
	for rows.Next() {
		report, err := scanMonthlyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// GetYearly retrieves one yearly report
func (r *ReportRepository) GetYearly(ownerID int32, year int) (*domain.YearlyReport, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+yearlyReportColumns+` FROM yearly_reports
		WHERE owner_id = $1 AND year = $2`, ownerID, year)

	report, err := scanYearlyReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// GetAllYearly retrieves every yearly report for an owner, oldest year first
func (r *ReportRepository) GetAllYearly(ownerID int32) ([]*domain.YearlyReport, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+yearlyReportColumns+` FROM yearly_reports
		WHERE owner_id = $1
		ORDER BY year`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.YearlyReport
	for rows.Next() {
		report, err := scanYearlyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
