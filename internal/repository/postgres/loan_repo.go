package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const loanColumns = `id, owner_id, borrower_name, principal_amount, interest_rate, term_months,
	total_interest, remaining_balance, status, account_id, created_at, updated_at`

// LoanRepository implements domain.LoanRepository using PostgreSQL. Loans
// are inserted only by the ledger store on disbursement.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// GetByID retrieves a loan by ID
func (r *LoanRepository) GetByID(ownerID, id int32) (*domain.Loan, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+loanColumns+` FROM loans
		WHERE owner_id = $1 AND id = $2`, ownerID, id)

	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// GetByOwner retrieves an owner's loans, optionally filtered by status,
// newest first
func (r *LoanRepository) GetByOwner(ownerID int32, status *domain.LoanStatus) ([]*domain.Loan, error) {
	ctx := context.Background()

	query := `SELECT ` + loanColumns + ` FROM loans WHERE owner_id = $1`
	args := []any{ownerID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// OutstandingTotal sums remaining balances across active loans
func (r *LoanRepository) OutstandingTotal(ownerID int32) (decimal.Decimal, error) {
	ctx := context.Background()
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(remaining_balance), 0) FROM loans
		WHERE owner_id = $1 AND status = 'active'`, ownerID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// CountByStatus counts an owner's loans in one status
func (r *LoanRepository) CountByStatus(ownerID int32, status domain.LoanStatus) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM loans
		WHERE owner_id = $1 AND status = $2`, ownerID, string(status)).Scan(&count)
	return count, err
}

// SetStatus updates a loan's status
func (r *LoanRepository) SetStatus(ownerID, id int32, status domain.LoanStatus) (*domain.Loan, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE loans SET status = $1, updated_at = now()
		WHERE owner_id = $2 AND id = $3
		RETURNING `+loanColumns,
		string(status), ownerID, id)

	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}
