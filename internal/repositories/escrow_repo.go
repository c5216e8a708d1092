package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/models"
)

// EscrowRepo reads custody records. All escrow writes happen inside the
// job ledger's transactions (funded create, release).
type EscrowRepo struct {
	pool *pgxpool.Pool
}

func NewEscrowRepo(pool *pgxpool.Pool) *EscrowRepo {
	return &EscrowRepo{pool: pool}
}

func (r *EscrowRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.EscrowAccount, error) {
	var e models.EscrowAccount
	err := r.pool.QueryRow(ctx, `
		SELECT id, job_id, vault, nonce, balance, status, released_at, released_to, created_at
		FROM escrow_accounts WHERE job_id = $1
	`, jobID).Scan(&e.ID, &e.JobID, &e.Vault, &e.Nonce, &e.Balance, &e.Status, &e.ReleasedAt, &e.ReleasedTo, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// MismatchedVault is a held vault whose balance differs from its job's
// amount. Under correct operation the result set is always empty.
type MismatchedVault struct {
	JobID   uuid.UUID
	Vault   string
	Balance int64
	Amount  int64
}

func (r *EscrowRepo) ListMismatched(ctx context.Context) ([]MismatchedVault, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.job_id, e.vault, e.balance, j.amount
		FROM escrow_accounts e
		JOIN jobs j ON j.id = e.job_id
		WHERE e.status = 'holding' AND e.balance <> j.amount
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MismatchedVault
	for rows.Next() {
		var m MismatchedVault
		if err := rows.Scan(&m.JobID, &m.Vault, &m.Balance, &m.Amount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
