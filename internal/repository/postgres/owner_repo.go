package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oseko/lendbook-backend/internal/domain"
)

const ownerColumns = `id, auth0_id, email, name, created_at, updated_at`

// OwnerRepository implements domain.OwnerRepository using PostgreSQL
type OwnerRepository struct {
	pool *pgxpool.Pool
}

// NewOwnerRepository creates a new OwnerRepository
func NewOwnerRepository(pool *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{pool: pool}
}

func scanOwner(row rowScanner) (*domain.Owner, error) {
	var (
		o    domain.Owner
		name pgtype.Text
	)
	if err := row.Scan(&o.ID, &o.Auth0ID, &o.Email, &name, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if name.Valid {
		o.Name = &name.String
	}
	return &o, nil
}

// GetByID retrieves an owner by internal ID
func (r *OwnerRepository) GetByID(id int32) (*domain.Owner, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)

	owner, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}
	return owner, nil
}

// GetByAuth0ID retrieves an owner by identity-provider subject
func (r *OwnerRepository) GetByAuth0ID(auth0ID string) (*domain.Owner, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+ownerColumns+` FROM owners WHERE auth0_id = $1`, auth0ID)

	owner, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}
	return owner, nil
}

// CreateOrGetByAuth0ID provisions an owner on first login; repeat logins
// return the existing row untouched
func (r *OwnerRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.Owner, error) {
	ctx := context.Background()

	nameText := pgtype.Text{}
	if name != nil {
		nameText = pgtype.Text{String: *name, Valid: true}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO owners (auth0_id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (auth0_id) DO UPDATE SET updated_at = owners.updated_at
		RETURNING `+ownerColumns,
		auth0ID, email, nameText)

	return scanOwner(row)
}
