package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const maxCommitRetries = 3

// LedgerStore implements domain.LedgerStore with SERIALIZABLE transactions.
// Serialization failures are retried with backoff; a commit that still
// conflicts after the retries surfaces as domain.ErrCommitConflict.
type LedgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore creates a new LedgerStore
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// WithinUnit runs fn inside one serializable transaction
func (s *LedgerStore) WithinUnit(ctx context.Context, fn func(unit domain.LedgerUnit) error) error {
	var lastErr error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err := s.runUnit(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return fmt.Errorf("%w: %v", domain.ErrCommitConflict, lastErr)
}

func (s *LedgerStore) runUnit(ctx context.Context, fn func(unit domain.LedgerUnit) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&ledgerUnit{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// isSerializationFailure reports whether the error is a retryable
// serialization or deadlock failure
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// ledgerUnit implements domain.LedgerUnit over one open pgx transaction
type ledgerUnit struct {
	tx pgx.Tx
}

func (u *ledgerUnit) AccountForUpdate(ctx context.Context, ownerID, accountID int32) (*domain.Account, error) {
	row := u.tx.QueryRow(ctx, `
		SELECT id, owner_id, name, kind, current_balance, previous_balance,
		       last_transaction_id, status, created_at, updated_at
		FROM accounts
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE`, ownerID, accountID)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (u *ledgerUnit) SaveAccountBalance(ctx context.Context, account *domain.Account) error {
	current, err := decimalToPgNumeric(account.CurrentBalance)
	if err != nil {
		return fmt.Errorf("invalid current balance: %w", err)
	}
	previous, err := decimalToPgNumeric(account.PreviousBalance)
	if err != nil {
		return fmt.Errorf("invalid previous balance: %w", err)
	}

	tag, err := u.tx.Exec(ctx, `
		UPDATE accounts
		SET current_balance = $1, previous_balance = $2,
		    last_transaction_id = $3, updated_at = now()
		WHERE id = $4`,
		current, previous, int32PtrToPgInt4(account.LastTransactionID), account.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (u *ledgerUnit) InsertTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(tx.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := u.tx.QueryRow(ctx, `
		INSERT INTO transactions
			(owner_id, occurred_on, type, category, amount, description,
			 reference, from_account_id, to_account_id, loan_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, owner_id, occurred_on, type, category, amount, description,
		          reference, from_account_id, to_account_id, balance_after, loan_id, created_at`,
		tx.OwnerID, tx.OccurredOn, string(tx.Type), tx.Category, amount, tx.Description,
		tx.Reference, int32PtrToPgInt4(tx.FromAccountID), int32PtrToPgInt4(tx.ToAccountID),
		int32PtrToPgInt4(tx.LoanID))

	return scanTransaction(row)
}

func (u *ledgerUnit) StampTransaction(ctx context.Context, id int32, balanceAfter *decimal.Decimal, loanID *int32) error {
	after, err := decimalPtrToPgNumeric(balanceAfter)
	if err != nil {
		return fmt.Errorf("invalid balance after: %w", err)
	}

	tag, err := u.tx.Exec(ctx, `
		UPDATE transactions SET balance_after = $1, loan_id = $2 WHERE id = $3`,
		after, int32PtrToPgInt4(loanID), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (u *ledgerUnit) InsertLoan(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	principal, err := decimalToPgNumeric(loan.PrincipalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid principal: %w", err)
	}
	rate, err := decimalToPgNumeric(loan.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("invalid interest rate: %w", err)
	}
	interest, err := decimalToPgNumeric(loan.TotalInterest)
	if err != nil {
		return nil, fmt.Errorf("invalid total interest: %w", err)
	}
	remaining, err := decimalToPgNumeric(loan.RemainingBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid remaining balance: %w", err)
	}

	row := u.tx.QueryRow(ctx, `
		INSERT INTO loans
			(owner_id, borrower_name, principal_amount, interest_rate, term_months,
			 total_interest, remaining_balance, status, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, owner_id, borrower_name, principal_amount, interest_rate, term_months,
		          total_interest, remaining_balance, status, account_id, created_at, updated_at`,
		loan.OwnerID, loan.BorrowerName, principal, rate, loan.TermMonths,
		interest, remaining, string(loan.Status), loan.AccountID)

	return scanLoan(row)
}

func (u *ledgerUnit) LoanForUpdate(ctx context.Context, ownerID, loanID int32) (*domain.Loan, error) {
	row := u.tx.QueryRow(ctx, `
		SELECT id, owner_id, borrower_name, principal_amount, interest_rate, term_months,
		       total_interest, remaining_balance, status, account_id, created_at, updated_at
		FROM loans
		WHERE owner_id = $1 AND id = $2
		FOR UPDATE`, ownerID, loanID)

	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

func (u *ledgerUnit) SaveLoan(ctx context.Context, loan *domain.Loan) error {
	remaining, err := decimalToPgNumeric(loan.RemainingBalance)
	if err != nil {
		return fmt.Errorf("invalid remaining balance: %w", err)
	}

	tag, err := u.tx.Exec(ctx, `
		UPDATE loans SET remaining_balance = $1, status = $2, updated_at = now()
		WHERE id = $3`,
		remaining, string(loan.Status), loan.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

func (u *ledgerUnit) PeriodTotals(ctx context.Context, ownerID int32, year, month int) (domain.PeriodTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'loan_disbursement'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'loan_payment'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE owner_id = $1 AND EXTRACT(YEAR FROM occurred_on) = $2`
	args := []any{ownerID, year}
	if month != 0 {
		query += ` AND EXTRACT(MONTH FROM occurred_on) = $3`
		args = append(args, month)
	}

	var disbursed, collected, income, expenses pgtype.Numeric
	if err := u.tx.QueryRow(ctx, query, args...).Scan(&disbursed, &collected, &income, &expenses); err != nil {
		return domain.PeriodTotals{}, err
	}

	return domain.PeriodTotals{
		TotalDisbursed: pgNumericToDecimal(disbursed),
		TotalCollected: pgNumericToDecimal(collected),
		TotalIncome:    pgNumericToDecimal(income),
		TotalExpenses:  pgNumericToDecimal(expenses),
	}, nil
}

func (u *ledgerUnit) UpsertMonthlyReport(ctx context.Context, ownerID int32, year, month int, totals domain.PeriodTotals) error {
	disbursed, collected, income, expenses, err := totalsToPgNumerics(totals)
	if err != nil {
		return err
	}

	_, err = u.tx.Exec(ctx, `
		INSERT INTO monthly_reports
			(owner_id, year, month, total_disbursed, total_collected, total_income, total_expenses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, year, month) DO UPDATE SET
			total_disbursed = EXCLUDED.total_disbursed,
			total_collected = EXCLUDED.total_collected,
			total_income = EXCLUDED.total_income,
			total_expenses = EXCLUDED.total_expenses,
			updated_at = now()`,
		ownerID, year, month, disbursed, collected, income, expenses)
	return err
}

func (u *ledgerUnit) UpsertYearlyReport(ctx context.Context, ownerID int32, year int, totals domain.PeriodTotals) error {
	disbursed, collected, income, expenses, err := totalsToPgNumerics(totals)
	if err != nil {
		return err
	}

	_, err = u.tx.Exec(ctx, `
		INSERT INTO yearly_reports
			(owner_id, year, total_disbursed, total_collected, total_income, total_expenses)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id, year) DO UPDATE SET
			total_disbursed = EXCLUDED.total_disbursed,
			total_collected = EXCLUDED.total_collected,
			total_income = EXCLUDED.total_income,
			total_expenses = EXCLUDED.total_expenses,
			updated_at = now()`,
		ownerID, year, disbursed, collected, income, expenses)
	return err
}

func (u *ledgerUnit) DeleteReports(ctx context.Context, ownerID *int32) error {
	if ownerID != nil {
		if _, err := u.tx.Exec(ctx, `DELETE FROM monthly_reports WHERE owner_id = $1`, *ownerID); err != nil {
			return err
		}
		_, err := u.tx.Exec(ctx, `DELETE FROM yearly_reports WHERE owner_id = $1`, *ownerID)
		return err
	}

	if _, err := u.tx.Exec(ctx, `DELETE FROM monthly_reports`); err != nil {
		return err
	}
	_, err := u.tx.Exec(ctx, `DELETE FROM yearly_reports`)
	return err
}

func (u *ledgerUnit) TransactionPeriods(ctx context.Context, ownerID *int32) ([]domain.Period, error) {
	query := `
		SELECT DISTINCT owner_id,
		       EXTRACT(YEAR FROM occurred_on)::int,
		       EXTRACT(MONTH FROM occurred_on)::int
		FROM transactions`
	args := []any{}
	if ownerID != nil {
		query += ` WHERE owner_id = $1`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY 1, 2, 3`

	rows, err := u.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		var p domain.Period
		if err := rows.Scan(&p.OwnerID, &p.Year, &p.Month); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func totalsToPgNumerics(totals domain.PeriodTotals) (disbursed, collected, income, expenses pgtype.Numeric, err error) {
	if disbursed, err = decimalToPgNumeric(totals.TotalDisbursed); err != nil {
		return
	}
	if collected, err = decimalToPgNumeric(totals.TotalCollected); err != nil {
		return
	}
	if income, err = decimalToPgNumeric(totals.TotalIncome); err != nil {
		return
	}
	expenses, err = decimalToPgNumeric(totals.TotalExpenses)
	return
}
