package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts the identity record. Re-registration for the same address
// fails ErrAlreadyExists; there is no update path.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (address, name, role)
		VALUES ($1, $2, $3)
		RETURNING id, balance, created_at
	`, u.Address, u.Name, u.Role).Scan(&u.ID, &u.Balance, &u.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user %s", apperr.ErrAlreadyExists, u.Address)
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	return r.get(ctx, `WHERE address = $1`, address)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, address, name, role, balance, created_at
		FROM users `+where, arg,
	).Scan(&u.ID, &u.Address, &u.Name, &u.Role, &u.Balance, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Credit adds to a user's spendable balance. Debits only happen inside the
// job ledger's funded-create transaction.
func (r *UserRepo) Credit(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	var balance int64
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET balance = balance + $1 WHERE id = $2
		RETURNING balance
	`, amount, id).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.ErrNotFound
	}
	return balance, err
}
