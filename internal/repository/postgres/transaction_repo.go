package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/util"
)

const transactionColumns = `id, owner_id, occurred_on, type, category, amount, description,
	reference, from_account_id, to_account_id, balance_after, loan_id, created_at`

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL. It is read-only; writes happen inside the ledger store.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ownerID, id int32) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE owner_id = $1 AND id = $2`, ownerID, id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// GetByOwner retrieves transactions with optional filters and pagination
func (r *TransactionRepository) GetByOwner(ownerID int32, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	where := `WHERE owner_id = $1`
	args := []any{ownerID}

	if filters != nil {
		if filters.AccountID != nil {
			args = append(args, *filters.AccountID)
			where += fmt.Sprintf(` AND (from_account_id = $%d OR to_account_id = $%d)`, len(args), len(args))
		}
		if filters.Type != nil {
			args = append(args, string(*filters.Type))
			where += fmt.Sprintf(` AND type = $%d`, len(args))
		}
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			where += fmt.Sprintf(` AND occurred_on >= $%d`, len(args))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			where += fmt.Sprintf(` AND occurred_on <= $%d`, len(args))
		}
	}

	var totalItems int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
			if pageSize > domain.MaxPageSize {
				pageSize = domain.MaxPageSize
			}
		}
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY occurred_on DESC, id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}

	return &domain.PaginatedTransactions{
		Data:       transactions,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetByLoanID retrieves every transaction referencing a loan, oldest first
func (r *TransactionRepository) GetByLoanID(ownerID, loanID int32) ([]*domain.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE owner_id = $1 AND loan_id = $2
		ORDER BY occurred_on, id`, ownerID, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// GetByMonth retrieves an owner's transactions within one calendar month
func (r *TransactionRepository) GetByMonth(ownerID int32, year, month int) ([]*domain.Transaction, error) {
	ctx := context.Background()
	start, end := util.MonthRange(year, month)
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE owner_id = $1
		  AND occurred_on BETWEEN $2 AND $3
		ORDER BY occurred_on, id`, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
