package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oseko/lendbook-backend/internal/domain"
)

const accountColumns = `id, owner_id, name, kind, current_balance, previous_balance,
	last_transaction_id, status, created_at, updated_at`

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	balance, err := decimalToPgNumeric(account.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid opening balance: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (owner_id, name, kind, current_balance, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+accountColumns,
		account.OwnerID, account.Name, string(account.Kind), balance, string(account.Status))

	return scanAccount(row)
}

// GetByID retrieves an account by ID within an owner's book
func (r *AccountRepository) GetByID(ownerID, id int32) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE owner_id = $1 AND id = $2`, ownerID, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAllByOwner retrieves all accounts for an owner, oldest first
func (r *AccountRepository) GetAllByOwner(ownerID int32) ([]*domain.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE owner_id = $1
		ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// SetStatus updates an account's status
func (r *AccountRepository) SetStatus(ownerID, id int32, status domain.AccountStatus) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE accounts SET status = $1, updated_at = now()
		WHERE owner_id = $2 AND id = $3
		RETURNING `+accountColumns,
		string(status), ownerID, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
